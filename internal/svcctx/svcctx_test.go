package svcctx

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackzampolin/timetable/internal/schedule"
	"github.com/jackzampolin/timetable/internal/store"
)

func TestServicesFrom(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil || StoreFrom(ctx) != nil || IngesterFrom(ctx) != nil {
			t.Error("expected nil services")
		}
		if LoggerFrom(ctx) != slog.Default() {
			t.Error("LoggerFrom should fall back to slog.Default")
		}
	})

	t.Run("attached services", func(t *testing.T) {
		s := store.NewMemoryStore()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := WithServices(context.Background(), &Services{Store: s, Logger: logger})
		if StoreFrom(ctx) != s {
			t.Error("StoreFrom returned a different store")
		}
		if LoggerFrom(ctx) != logger {
			t.Error("LoggerFrom returned a different logger")
		}
	})
}

func TestDatabaseFrom(t *testing.T) {
	if DatabaseFrom(context.Background()) != nil {
		t.Error("expected nil database")
	}
	db := &schedule.Database{Roster: schedule.Roster{}}
	if DatabaseFrom(WithDatabase(context.Background(), db)) != db {
		t.Error("DatabaseFrom returned a different database")
	}
}
