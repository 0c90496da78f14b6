package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/timetable/internal/extract"
	"github.com/jackzampolin/timetable/internal/pdfdoc"
	"github.com/jackzampolin/timetable/internal/store"
	"github.com/jackzampolin/timetable/internal/testutil"
)

func TestIngest(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	in, err := New(Config{Reader: &testutil.FakeReader{Pages: testutil.Pages()}, Store: s})
	if err != nil {
		t.Fatal(err)
	}

	res, err := in.Ingest(ctx, Request{Data: []byte("%PDF"), Filename: "/tmp/jadwal (2).pdf"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !res.Stored || res.UploadID == "" || res.Source != "jadwal" {
		t.Errorf("Result = %+v", res)
	}
	if res.Report.Records != 1 {
		t.Errorf("Report.Records = %d, want 1", res.Report.Records)
	}

	db, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("store Get() error = %v", err)
	}
	if len(db.Records) != 1 || db.Records[0].ClassSection != "X-3" {
		t.Errorf("stored records = %+v", db.Records)
	}
}

func TestIngest_Overrides(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	in, _ := New(Config{Reader: &testutil.FakeReader{Pages: testutil.Pages()}, Store: s})

	offset := 12
	res, err := in.Ingest(ctx, Request{Data: []byte("%PDF"), ColumnOffset: &offset, SchedulePages: []int{1}})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !res.Report.PagesOverride || res.Report.ColumnOffset != 12 {
		t.Errorf("Report = %+v", res.Report)
	}
	db, _ := s.Get(ctx)
	if db.Records[0].ClassSection != "XI-3" {
		t.Errorf("ClassSection = %q, want XI-3", db.Records[0].ClassSection)
	}
}

func TestIngest_DryRun(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	in, _ := New(Config{Reader: &testutil.FakeReader{Pages: testutil.Pages()}, Store: s})

	res, err := in.Ingest(ctx, Request{Data: []byte("%PDF"), DryRun: true})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.Stored || res.Database == nil {
		t.Errorf("Result = %+v", res)
	}
	if _, err := s.Get(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("dry run stored a database: %v", err)
	}
}

func TestIngest_FailuresStoreNothing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		reader *testutil.FakeReader
		req    Request
		opts   OptionsFunc
	}{
		{"invalid pdf", &testutil.FakeReader{Err: pdfdoc.ErrInvalidPDF}, Request{Data: []byte("x")}, nil},
		{"empty data", &testutil.FakeReader{Pages: testutil.Pages()}, Request{}, nil},
		{"page out of range", &testutil.FakeReader{Pages: testutil.Pages()}, Request{Data: []byte("x"), SchedulePages: []int{7}}, nil},
		{"bad options", &testutil.FakeReader{Pages: testutil.Pages()}, Request{Data: []byte("x")}, func() (extract.Options, error) {
			return extract.Options{}, errors.New("bad rule")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			in, _ := New(Config{Reader: tt.reader, Store: s, Options: tt.opts})
			if _, err := in.Ingest(ctx, tt.req); err == nil {
				t.Fatal("expected error")
			}
			if _, err := s.Get(ctx); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("failed upload stored a database: %v", err)
			}
		})
	}
}

func TestIngest_WrapsReaderError(t *testing.T) {
	in, _ := New(Config{Reader: &testutil.FakeReader{Err: pdfdoc.ErrInvalidPDF}, Store: store.NewMemoryStore()})
	_, err := in.Ingest(context.Background(), Request{Data: []byte("x")})
	if !errors.Is(err, pdfdoc.ErrInvalidPDF) {
		t.Errorf("error = %v, want ErrInvalidPDF", err)
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/path/to/jadwal-2024.pdf", "jadwal-2024"},
		{"jadwal (1).pdf", "jadwal"},
		{"schedule.PDF", "schedule"},
		{"", "upload"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := deriveName(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIngest_Archive(t *testing.T) {
	dir := t.TempDir()
	in, _ := New(Config{Reader: &testutil.FakeReader{Pages: testutil.Pages()}, Store: store.NewMemoryStore(), ArchiveDir: dir})

	res, err := in.Ingest(context.Background(), Request{Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, res.UploadID+".pdf"))
	if err != nil || string(data) != "%PDF-1.4" {
		t.Errorf("archived upload = %q, %v", data, err)
	}
}

func TestIngest_LastUploadAndReset(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	in, _ := New(Config{Reader: &testutil.FakeReader{Pages: testutil.Pages()}, Store: s})

	if in.LastUpload() != nil {
		t.Fatal("LastUpload() should be nil before any upload")
	}
	if _, err := in.Ingest(ctx, Request{Data: []byte("x"), DryRun: true}); err != nil {
		t.Fatal(err)
	}
	if in.LastUpload() != nil {
		t.Error("dry run should not become the last upload")
	}

	res, err := in.Ingest(ctx, Request{Data: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	if got := in.LastUpload(); got == nil || got.UploadID != res.UploadID {
		t.Errorf("LastUpload() = %+v, want %s", got, res.UploadID)
	}

	if err := in.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if in.LastUpload() != nil {
		t.Error("LastUpload() should be nil after Reset")
	}
	if _, err := s.Get(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after Reset error = %v, want ErrNotFound", err)
	}
}
