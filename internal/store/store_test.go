package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/timetable/internal/schedule"
)

func testDatabase() *schedule.Database {
	return &schedule.Database{
		Roster: schedule.Roster{
			"32A": {Code: "32A", Name: "Ani Rahma", Subject: "Mathematics"},
		},
		Records: []schedule.Record{
			{Day: schedule.Monday, Period: 1, PeriodLabel: "1", Time: "06.30-07.15", ClassSection: "X-3", TeacherCodes: []string{"32A"}},
			{Day: schedule.Friday, Period: 2, PeriodLabel: "2", Time: "07.15-08.00", ClassSection: "XII-1", TeacherCodes: []string{"32A", "12"}},
		},
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	sqlite, err := NewSQLiteStore(ctx, filepath.Join(dir, "schedule.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "data", "schedule.json"), nil),
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
			}

			if err := s.Put(ctx, testDatabase()); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			got, err := s.Get(ctx)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if len(got.Records) != 2 || got.Records[1].ClassSection != "XII-1" {
				t.Errorf("Records = %+v", got.Records)
			}
			if got.Roster["32A"].Name != "Ani Rahma" {
				t.Errorf("Roster = %+v", got.Roster)
			}

			replacement := testDatabase()
			replacement.Records = replacement.Records[:1]
			if err := s.Put(ctx, replacement); err != nil {
				t.Fatalf("second Put() error = %v", err)
			}
			got, err = s.Get(ctx)
			if err != nil || len(got.Records) != 1 {
				t.Errorf("after replace: %v records, err = %v", len(got.Records), err)
			}

			if err := s.Clear(ctx); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if _, err := s.Get(ctx); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() after Clear error = %v, want ErrNotFound", err)
			}
			if err := s.Clear(ctx); err != nil {
				t.Errorf("second Clear() error = %v", err)
			}
		})
	}
}

func TestStores_PutRejectsUndecodable(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, testDatabase()); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			bad := testDatabase()
			bad.Records[0].ClassSection = "10-1"
			if err := s.Put(ctx, bad); !errors.Is(err, schedule.ErrInvalidDatabase) {
				t.Fatalf("Put() error = %v, want ErrInvalidDatabase", err)
			}

			got, err := s.Get(ctx)
			if err != nil {
				t.Fatalf("Get() after rejected Put error = %v", err)
			}
			if got.Records[0].ClassSection != "X-3" {
				t.Errorf("stored schedule replaced by rejected one: %+v", got.Records[0])
			}
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Put(ctx, testDatabase()); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Get(ctx)
	first.Records[0].ClassSection = "X-9"

	second, _ := s.Get(ctx)
	if second.Records[0].ClassSection != "X-3" {
		t.Error("mutation leaked into store")
	}
}

func TestFileStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	if err := os.WriteFile(path, []byte(`{"roster": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(path, nil).Get(context.Background())
	if !errors.Is(err, schedule.ErrInvalidDatabase) {
		t.Errorf("Get() error = %v, want ErrInvalidDatabase", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file relative to dir", Config{Driver: DriverFile, Path: "schedule.json", Dir: dir}, false},
		{"sqlite", Config{Driver: DriverSQLite, Path: "schedule.db", Dir: dir}, false},
		{"memory", Config{Driver: DriverMemory}, false},
		{"file without path", Config{Driver: DriverFile}, true},
		{"unknown driver", Config{Driver: "redis", Path: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				s.Close()
			}
		})
	}

	s, err := Open(ctx, Config{Driver: DriverFile, Path: "schedule.json", Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.(*FileStore).Path(); got != filepath.Join(dir, "schedule.json") {
		t.Errorf("Path() = %q", got)
	}
}
