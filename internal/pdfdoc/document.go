// Package pdfdoc reads a PDF byte stream into extract.Page values: the plain
// text of every page plus the line-ruled tables found on it.
package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"

	"github.com/jackzampolin/timetable/internal/extract"
)

// ErrInvalidPDF is returned when the document cannot be read structurally.
var ErrInvalidPDF = errors.New("invalid PDF")

// Config tunes grid detection.
type Config struct {
	// AlignmentTolerance is how far apart, in points, two rules may be and
	// still count as one grid line.
	AlignmentTolerance float64
	// MinLineLength ignores rules shorter than this, in points.
	MinLineLength float64
	Logger        *slog.Logger
}

// DefaultConfig matches the strict ruled-line extraction of the source documents.
func DefaultConfig() Config {
	return Config{
		AlignmentTolerance: 5,
		MinLineLength:      10,
	}
}

// Reader turns PDF bytes into pages.
type Reader struct {
	cfg    Config
	logger *slog.Logger
}

// NewReader creates a Reader. Zero tolerances fall back to DefaultConfig.
func NewReader(cfg Config) *Reader {
	def := DefaultConfig()
	if cfg.AlignmentTolerance <= 0 {
		cfg.AlignmentTolerance = def.AlignmentTolerance
	}
	if cfg.MinLineLength <= 0 {
		cfg.MinLineLength = def.MinLineLength
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{cfg: cfg, logger: logger}
}

// Read validates data and extracts every page in order.
// Any structural failure aborts the whole read.
func (r *Reader) Read(ctx context.Context, data []byte) ([]extract.Page, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidPDF)
	}

	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}

	plain := r.plainText(data, pageCount)

	tmp, err := os.CreateTemp("", "timetable-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	doc, err := reader.Open(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	defer doc.Close()

	detector := tables.NewGridDetector()
	detector.AlignmentTolerance = r.cfg.AlignmentTolerance
	detector.MinLineLength = r.cfg.MinLineLength

	out := make([]extract.Page, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := doc.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrInvalidPDF, i, err)
		}
		frags, err := doc.ExtractTextFragments(page)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d text: %v", ErrInvalidPDF, i, err)
		}

		p := extract.Page{Index: i, Text: plain[i]}
		if strings.TrimSpace(p.Text) == "" {
			p.Text = fragmentsText(frags)
		}

		ge, err := graphics(page)
		if err != nil {
			r.logger.Warn("failed to read page graphics, no tables", "page", i, "error", err)
		} else {
			for _, g := range detectGrids(detector, ge) {
				if t := fillGrid(g, frags); len(t) > 0 {
					p.Tables = append(p.Tables, t)
				}
			}
		}

		r.logger.Debug("page read", "page", i, "fragments", len(frags), "tables", len(p.Tables))
		out = append(out, p)
	}
	return out, nil
}

// plainText returns the text of each page, indexed from zero. Pages the text
// extractor cannot read are left empty so the fragment text is used instead.
func (r *Reader) plainText(data []byte, pageCount int) []string {
	out := make([]string, pageCount)
	pr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		r.logger.Debug("plain text extraction unavailable", "error", err)
		return out
	}
	for i := 1; i <= pr.NumPage() && i <= pageCount; i++ {
		page := pr.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil {
			r.logger.Debug("page text unreadable", "page", i-1, "error", err)
			continue
		}
		out[i-1] = t
	}
	return out
}

// graphics decodes the page content streams and collects its lines and rectangles.
func graphics(page *pages.Page) (*graphicsstate.GraphicsExtractor, error) {
	contents, err := page.Contents()
	if err != nil {
		return nil, err
	}
	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		b, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode content stream: %w", err)
		}
		data = append(data, b...)
		data = append(data, '\n')
	}
	ge := graphicsstate.NewGraphicsExtractor()
	if len(data) == 0 {
		return ge, nil
	}
	if err := ge.ExtractFromBytes(data); err != nil {
		return nil, err
	}
	return ge, nil
}

func fragmentsText(frags []text.TextFragment) string {
	parts := make([]string, 0, len(frags))
	for _, f := range frags {
		if s := strings.TrimSpace(f.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
