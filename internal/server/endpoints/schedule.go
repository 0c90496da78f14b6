package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/timetable/internal/api"
	"github.com/jackzampolin/timetable/internal/extract"
	"github.com/jackzampolin/timetable/internal/ingest"
	"github.com/jackzampolin/timetable/internal/pdfdoc"
	"github.com/jackzampolin/timetable/internal/schedule"
	"github.com/jackzampolin/timetable/internal/svcctx"
)

const defaultMaxUploadBytes = 32 << 20 // 32MB

var validate = validator.New()

// uploadForm is the validated form of a schedule upload.
type uploadForm struct {
	Filename      string `validate:"required"`
	Size          int64  `validate:"gt=0"`
	SchedulePages []int  `validate:"unique,dive,gte=0"`
	ColumnOffset  *int   `validate:"omitempty,gte=-100,lte=100"`
	DryRun        bool
}

// UploadScheduleEndpoint handles POST /api/schedule.
type UploadScheduleEndpoint struct {
	// MaxBytes caps the request body; zero means 32MB.
	MaxBytes int64
}

var _ api.Endpoint = (*UploadScheduleEndpoint)(nil)

func (e *UploadScheduleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/schedule", e.handler
}

func (e *UploadScheduleEndpoint) RequiresData() bool { return false }

// handler godoc
//
//	@Summary		Upload a schedule PDF
//	@Description	Extract the roster and the schedule grid from a PDF and replace the stored schedule
//	@Tags			schedule
//	@Accept			mpfd
//	@Produce		json
//	@Param			file			formData	file	true	"Schedule PDF"
//	@Param			schedule_pages	formData	string	false	"Comma-separated 0-based page indices overriding detection"
//	@Param			column_offset	formData	int		false	"Shift applied to the column to class mapping"
//	@Param			dry_run			formData	bool	false	"Extract and report without storing"
//	@Success		200				{object}	ingest.Result
//	@Failure		400				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Failure		503				{object}	ErrorResponse
//	@Router			/api/schedule [post]
func (e *UploadScheduleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ingester := svcctx.IngesterFrom(r.Context())
	if ingester == nil {
		writeError(w, http.StatusServiceUnavailable, "ingester not initialized")
		return
	}

	maxBytes := e.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	form, err := parseUploadForm(r, fh.Filename, fh.Size)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	res, err := ingester.Ingest(r.Context(), ingest.Request{
		Data:          data,
		Filename:      form.Filename,
		SchedulePages: form.SchedulePages,
		ColumnOffset:  form.ColumnOffset,
		DryRun:        form.DryRun,
	})
	if err != nil {
		writeError(w, uploadStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// parseUploadForm reads the optional fields and validates the upload.
func parseUploadForm(r *http.Request, filename string, size int64) (*uploadForm, error) {
	form := &uploadForm{Filename: filename, Size: size}

	pages, err := parsePages(r.FormValue("schedule_pages"))
	if err != nil {
		return nil, err
	}
	form.SchedulePages = pages

	if v := strings.TrimSpace(r.FormValue("column_offset")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid column_offset %q", v)
		}
		form.ColumnOffset = &n
	}
	if v := r.FormValue("dry_run"); v != "" {
		form.DryRun, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid dry_run %q", v)
		}
	}

	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid upload: %s failed %s", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, err
	}
	return form, nil
}

// parsePages parses "1,3, 4" into page indices.
func parsePages(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page index %q", part)
		}
		pages = append(pages, n)
	}
	return pages, nil
}

// uploadStatus maps pipeline errors to HTTP status codes.
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, pdfdoc.ErrInvalidPDF), errors.Is(err, extract.ErrNoPages):
		return http.StatusUnprocessableEntity
	case errors.Is(err, extract.ErrPageOutOfRange), errors.Is(err, extract.ErrDuplicatePage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (e *UploadScheduleEndpoint) Command(getServerURL func() string) *cobra.Command {
	var pages string
	var offset int
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "upload <pdf>",
		Short: "Upload a schedule PDF",
		Long: `Upload a schedule PDF to the server.

The server detects the roster page and the schedule pages, flattens the grid
and replaces the stored schedule. Use --pages when detection picks the wrong
pages and --offset when class sections come out shifted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			fields := map[string]string{}
			if pages != "" {
				fields["schedule_pages"] = pages
			}
			if cmd.Flags().Changed("offset") {
				fields["column_offset"] = strconv.Itoa(offset)
			}
			if dryRun {
				fields["dry_run"] = "true"
			}

			client := api.NewClient(getServerURL())
			var resp ingest.Result
			if err := client.Upload(cmd.Context(), "/api/schedule", filepath.Base(path), data, fields, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&pages, "pages", "", "Comma-separated 0-based schedule page indices")
	cmd.Flags().IntVar(&offset, "offset", 0, "Column to class mapping offset")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and report without storing")
	return cmd
}

// ScheduleResponse describes the stored schedule.
type ScheduleResponse struct {
	schedule.Summary `yaml:",inline"`
	// LastUpload is the most recent upload served by this process, if any.
	LastUpload *ingest.Result `json:"last_upload,omitempty" yaml:"last_upload,omitempty"`
}

// GetScheduleEndpoint handles GET /api/schedule.
type GetScheduleEndpoint struct{}

func (e *GetScheduleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/schedule", e.handler
}

func (e *GetScheduleEndpoint) RequiresData() bool { return true }

// handler godoc
//
//	@Summary		Stored schedule summary
//	@Description	Counts of teachers and records, the class sections, and the last upload report
//	@Tags			schedule
//	@Produce		json
//	@Success		200	{object}	ScheduleResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/schedule [get]
func (e *GetScheduleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	db, ok := loadDatabase(w, r)
	if !ok {
		return
	}
	resp := ScheduleResponse{Summary: db.Summarize()}
	if in := svcctx.IngesterFrom(r.Context()); in != nil {
		resp.LastUpload = in.LastUpload()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *GetScheduleEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the stored schedule summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ScheduleResponse
			if err := client.Get(cmd.Context(), "/api/schedule", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ResetResponse confirms a reset.
type ResetResponse struct {
	Status string `json:"status"`
}

// ResetScheduleEndpoint handles DELETE /api/schedule.
type ResetScheduleEndpoint struct{}

func (e *ResetScheduleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/schedule", e.handler
}

func (e *ResetScheduleEndpoint) RequiresData() bool { return false }

// handler godoc
//
//	@Summary		Reset the stored schedule
//	@Description	Remove the stored schedule so the next query reports none
//	@Tags			schedule
//	@Produce		json
//	@Success		200	{object}	ResetResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/schedule [delete]
func (e *ResetScheduleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if in := svcctx.IngesterFrom(r.Context()); in != nil {
		if err := in.Reset(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ResetResponse{Status: "cleared"})
		return
	}

	s := svcctx.StoreFrom(r.Context())
	if s == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}
	if err := s.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ResetResponse{Status: "cleared"})
}

func (e *ResetScheduleEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove the stored schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ResetResponse
			if err := client.Delete(cmd.Context(), "/api/schedule", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}
