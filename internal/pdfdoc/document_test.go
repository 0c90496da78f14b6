package pdfdoc

import (
	"context"
	"errors"
	"testing"
)

func TestRead_RejectsInvalid(t *testing.T) {
	r := NewReader(Config{})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("hello, this is plain text")},
		{"truncated header", []byte("%PDF-1.4\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Read(context.Background(), tt.data)
			if !errors.Is(err, ErrInvalidPDF) {
				t.Errorf("Read() error = %v, want ErrInvalidPDF", err)
			}
		})
	}
}

func TestNewReader_Defaults(t *testing.T) {
	r := NewReader(Config{AlignmentTolerance: -1})
	if r.cfg.AlignmentTolerance != 5 || r.cfg.MinLineLength != 10 {
		t.Errorf("cfg = %+v", r.cfg)
	}
	if r.logger == nil {
		t.Error("logger not defaulted")
	}
}
