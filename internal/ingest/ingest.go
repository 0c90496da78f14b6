// Package ingest runs one schedule upload: read the PDF, build the database,
// and store it.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/timetable/internal/extract"
	"github.com/jackzampolin/timetable/internal/store"
)

// PageReader turns PDF bytes into pages.
type PageReader interface {
	Read(ctx context.Context, data []byte) ([]extract.Page, error)
}

// OptionsFunc returns the pipeline options in effect. It is called once per
// upload so configuration changes apply to the next upload.
type OptionsFunc func() (extract.Options, error)

// Request is one upload with its manual overrides.
type Request struct {
	Data     []byte
	Filename string
	// SchedulePages overrides page classification when non-empty.
	SchedulePages []int
	// ColumnOffset overrides the configured offset when set.
	ColumnOffset *int
	// DryRun builds the database without storing it.
	DryRun bool
}

// Result describes a finished upload.
type Result struct {
	UploadID string         `json:"upload_id" yaml:"upload_id"`
	Source   string         `json:"source" yaml:"source"`
	Stored   bool           `json:"stored" yaml:"stored"`
	Duration string         `json:"duration" yaml:"duration"`
	Report   extract.Report `json:"report" yaml:"report"`

	Database *extract.Result `json:"-" yaml:"-"`
}

// Config wires an Ingester.
type Config struct {
	Reader  PageReader
	Store   store.Store
	Options OptionsFunc
	// ArchiveDir, when set, keeps a copy of every stored upload as <upload_id>.pdf.
	ArchiveDir string
	Logger     *slog.Logger
}

// Ingester serialises uploads so two never interleave.
type Ingester struct {
	mu      sync.Mutex
	reader  PageReader
	store   store.Store
	options OptionsFunc
	archive string
	logger  *slog.Logger

	last *Result
}

// New creates an Ingester. Store may be nil when only dry runs are made.
func New(cfg Config) (*Ingester, error) {
	if cfg.Reader == nil {
		return nil, errors.New("page reader is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	options := cfg.Options
	if options == nil {
		options = func() (extract.Options, error) { return extract.Options{}, nil }
	}
	return &Ingester{
		reader:  cfg.Reader,
		store:   cfg.Store,
		options: options,
		archive: cfg.ArchiveDir,
		logger:  logger,
	}, nil
}

// Ingest runs the whole upload. Nothing is stored unless every step succeeds.
func (in *Ingester) Ingest(ctx context.Context, req Request) (*Result, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	start := time.Now()
	id := uuid.New().String()
	log := in.logger.With("upload_id", id)

	if len(req.Data) == 0 {
		return nil, fmt.Errorf("no PDF data provided")
	}
	if !req.DryRun && in.store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	source := deriveName(req.Filename)
	log.Info("starting upload", "source", source, "bytes", len(req.Data))

	pages, err := in.reader.Read(ctx, req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	opts, err := in.options()
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	opts.Logger = log
	if len(req.SchedulePages) > 0 {
		opts.SchedulePages = req.SchedulePages
	}
	if req.ColumnOffset != nil {
		opts.ColumnOffset = *req.ColumnOffset
	}

	built, err := extract.Build(pages, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		UploadID: id,
		Source:   source,
		Report:   built.Report,
		Database: built,
	}
	if !req.DryRun {
		if err := in.store.Put(ctx, built.Database); err != nil {
			return nil, fmt.Errorf("failed to store schedule: %w", err)
		}
		res.Stored = true
		in.archiveUpload(log, id, req.Data)
	}
	res.Duration = time.Since(start).Round(time.Millisecond).String()
	if res.Stored {
		in.last = res
	}

	log.Info("upload complete",
		"pages", built.Report.PageCount,
		"records", built.Report.Records,
		"teachers", built.Report.Teachers,
		"stored", res.Stored,
		"duration", res.Duration)
	return res, nil
}

// LastUpload returns the most recent stored upload of this process, or nil.
func (in *Ingester) LastUpload() *Result {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.last
}

// Reset clears the stored schedule. It waits for any running upload.
func (in *Ingester) Reset(ctx context.Context) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.store == nil {
		return fmt.Errorf("no store configured")
	}
	if err := in.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}
	in.last = nil
	in.logger.Info("schedule cleared")
	return nil
}

// archiveUpload keeps the source PDF next to the stored database. Failures are
// logged; the upload itself already succeeded.
func (in *Ingester) archiveUpload(log *slog.Logger, id string, data []byte) {
	if in.archive == "" {
		return
	}
	if err := os.MkdirAll(in.archive, 0o755); err != nil {
		log.Warn("failed to create archive directory", "error", err)
		return
	}
	path := filepath.Join(in.archive, id+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warn("failed to archive upload", "path", path, "error", err)
		return
	}
	log.Debug("upload archived", "path", path)
}

var copySuffix = regexp.MustCompile(`\s*\(\d+\)$`)

// deriveName turns an upload filename into a display name.
// e.g., "jadwal-2024 (1).pdf" -> "jadwal-2024"
func deriveName(filename string) string {
	if filename == "" {
		return "upload"
	}
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return copySuffix.ReplaceAllString(name, "")
}
