package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackzampolin/timetable/internal/api"
	"github.com/jackzampolin/timetable/internal/ingest"
	"github.com/jackzampolin/timetable/internal/pdfdoc"
	"github.com/jackzampolin/timetable/internal/schedule"
	"github.com/jackzampolin/timetable/internal/store"
	"github.com/jackzampolin/timetable/internal/svcctx"
	"github.com/jackzampolin/timetable/internal/testutil"
)

func storeWith(t *testing.T, db *schedule.Database) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	if db != nil {
		if err := s.Put(context.Background(), db); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

// serve routes req to ep through a mux so path values resolve.
func serve(ep api.Endpoint, services *svcctx.Services, req *http.Request) *httptest.ResponseRecorder {
	method, path, handler := ep.Route()
	mux := http.NewServeMux()
	mux.HandleFunc(method+" "+path, handler)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req.WithContext(svcctx.WithServices(req.Context(), services)))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestHealthEndpoint(t *testing.T) {
	rec := serve(&HealthEndpoint{}, &svcctx.Services{}, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decode[HealthResponse](t, rec); resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
}

func TestListTeachersEndpoint(t *testing.T) {
	t.Run("sorted by name", func(t *testing.T) {
		rec := serve(&ListTeachersEndpoint{}, &svcctx.Services{Store: storeWith(t, testutil.Database())},
			httptest.NewRequest("GET", "/api/teachers", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
		resp := decode[TeacherList](t, rec)
		if len(resp.Teachers) != 2 || resp.Teachers[0].Code != "32A" || resp.Teachers[1].Name != "Budi Santoso" {
			t.Errorf("Teachers = %+v", resp.Teachers)
		}
	})

	t.Run("no schedule", func(t *testing.T) {
		rec := serve(&ListTeachersEndpoint{}, &svcctx.Services{Store: storeWith(t, nil)},
			httptest.NewRequest("GET", "/api/teachers", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("no store", func(t *testing.T) {
		rec := serve(&ListTeachersEndpoint{}, &svcctx.Services{}, httptest.NewRequest("GET", "/api/teachers", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestTeacherGridEndpoint(t *testing.T) {
	services := &svcctx.Services{Store: storeWith(t, testutil.Database())}

	tests := []struct {
		name     string
		url      string
		wantCode int
		check    func(t *testing.T, v schedule.View)
	}{
		{
			name:     "by code",
			url:      "/api/teachers/32A/grid",
			wantCode: http.StatusOK,
			check: func(t *testing.T, v schedule.View) {
				if got := v.Cell(schedule.Monday, 1); got != "X-3" {
					t.Errorf("MON/1 = %q, want X-3", got)
				}
				if got := v.Cell(schedule.Tuesday, 2); got != "XI-1" {
					t.Errorf("TUE/2 = %q, want XI-1", got)
				}
				if got := v.Cell(schedule.Wednesday, 1); got != schedule.EmptyMarker {
					t.Errorf("WED/1 = %q, want empty marker", got)
				}
			},
		},
		{
			name:     "lower case code with subject value",
			url:      "/api/teachers/35a/grid?value=subject",
			wantCode: http.StatusOK,
			check: func(t *testing.T, v schedule.View) {
				if got := v.Cell(schedule.Tuesday, 2); got != "Physics" {
					t.Errorf("TUE/2 = %q, want Physics", got)
				}
			},
		},
		{
			name:     "by name",
			url:      "/api/teachers/ani%20rahma/grid",
			wantCode: http.StatusOK,
			check: func(t *testing.T, v schedule.View) {
				if len(v.Selector.Teacher) != 1 || v.Selector.Teacher[0] != "32A" {
					t.Errorf("Selector = %+v", v.Selector)
				}
			},
		},
		{
			name:     "code only in grid",
			url:      "/api/teachers/40B/grid",
			wantCode: http.StatusOK,
			check: func(t *testing.T, v schedule.View) {
				if got := v.Cell(schedule.Friday, 1); got != "X-3" {
					t.Errorf("FRI/1 = %q, want X-3", got)
				}
			},
		},
		{name: "several codes", url: "/api/teachers/32A,35A/grid", wantCode: http.StatusOK},
		{name: "unknown teacher", url: "/api/teachers/99Z/grid", wantCode: http.StatusNotFound},
		{name: "bad value", url: "/api/teachers/32A/grid?value=colour", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&TeacherGridEndpoint{}, services, httptest.NewRequest("GET", tt.url, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body)
			}
			if tt.check != nil {
				tt.check(t, decode[schedule.View](t, rec))
			}
		})
	}
}

func TestClassEndpoints(t *testing.T) {
	services := &svcctx.Services{Store: storeWith(t, testutil.Database())}

	t.Run("list", func(t *testing.T) {
		rec := serve(&ListClassesEndpoint{}, services, httptest.NewRequest("GET", "/api/classes", nil))
		resp := decode[ClassList](t, rec)
		if strings.Join(resp.Classes, ",") != "X-3,XI-1" {
			t.Errorf("Classes = %v", resp.Classes)
		}
	})

	t.Run("grid shows teachers by default", func(t *testing.T) {
		rec := serve(&ClassGridEndpoint{}, services, httptest.NewRequest("GET", "/api/classes/x-3/grid", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
		v := decode[schedule.View](t, rec)
		if got := v.Cell(schedule.Monday, 1); got != "Ani Rahma (32A)" {
			t.Errorf("MON/1 = %q", got)
		}
		if got := v.Cell(schedule.Friday, 1); got != "40B" {
			t.Errorf("FRI/1 = %q, want bare code", got)
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		rec := serve(&ClassGridEndpoint{}, services, httptest.NewRequest("GET", "/api/classes/XII-9/grid", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func multipartRequest(t *testing.T, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(data)
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	req := httptest.NewRequest("POST", "/api/schedule", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadScheduleEndpoint(t *testing.T) {
	newServices := func(t *testing.T, reader *testutil.FakeReader) *svcctx.Services {
		s := store.NewMemoryStore()
		in, err := ingest.New(ingest.Config{Reader: reader, Store: s})
		if err != nil {
			t.Fatal(err)
		}
		return &svcctx.Services{Store: s, Ingester: in}
	}

	t.Run("stores the schedule", func(t *testing.T) {
		services := newServices(t, &testutil.FakeReader{Pages: testutil.Pages()})
		rec := serve(&UploadScheduleEndpoint{}, services, multipartRequest(t, "jadwal.pdf", []byte("%PDF"), nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
		res := decode[ingest.Result](t, rec)
		if !res.Stored || res.Report.Records != 1 || res.Source != "jadwal" {
			t.Errorf("Result = %+v", res)
		}
		if _, err := services.Store.Get(context.Background()); err != nil {
			t.Errorf("store Get() error = %v", err)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		services := newServices(t, &testutil.FakeReader{Pages: testutil.Pages()})
		rec := serve(&UploadScheduleEndpoint{}, services, multipartRequest(t, "jadwal.pdf", []byte("%PDF"),
			map[string]string{"schedule_pages": "1", "column_offset": "12", "dry_run": "true"}))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
		res := decode[ingest.Result](t, rec)
		if res.Stored || !res.Report.PagesOverride || res.Report.ColumnOffset != 12 {
			t.Errorf("Result = %+v", res)
		}
	})

	tests := []struct {
		name     string
		reader   *testutil.FakeReader
		req      func(t *testing.T) *http.Request
		wantCode int
	}{
		{
			name:     "missing file",
			reader:   &testutil.FakeReader{Pages: testutil.Pages()},
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "", nil, nil) },
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "negative page",
			reader: &testutil.FakeReader{Pages: testutil.Pages()},
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "a.pdf", []byte("x"), map[string]string{"schedule_pages": "-1"})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "page out of range",
			reader: &testutil.FakeReader{Pages: testutil.Pages()},
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "a.pdf", []byte("x"), map[string]string{"schedule_pages": "9"})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "repeated page",
			reader: &testutil.FakeReader{Pages: testutil.Pages()},
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "a.pdf", []byte("x"), map[string]string{"schedule_pages": "1, 1"})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "bad offset",
			reader: &testutil.FakeReader{Pages: testutil.Pages()},
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "a.pdf", []byte("x"), map[string]string{"column_offset": "two"})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid pdf",
			reader:   &testutil.FakeReader{Err: pdfdoc.ErrInvalidPDF},
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "a.pdf", []byte("x"), nil) },
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "empty file",
			reader:   &testutil.FakeReader{Pages: testutil.Pages()},
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "a.pdf", nil, nil) },
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := newServices(t, tt.reader)
			rec := serve(&UploadScheduleEndpoint{}, services, tt.req(t))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body)
			}
			if _, err := services.Store.Get(context.Background()); err == nil {
				t.Error("failed upload stored a schedule")
			}
		})
	}

	t.Run("no ingester", func(t *testing.T) {
		rec := serve(&UploadScheduleEndpoint{}, &svcctx.Services{}, multipartRequest(t, "a.pdf", []byte("x"), nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestGetAndResetSchedule(t *testing.T) {
	s := storeWith(t, testutil.Database())
	in, _ := ingest.New(ingest.Config{Reader: &testutil.FakeReader{}, Store: s})
	services := &svcctx.Services{Store: s, Ingester: in}

	rec := serve(&GetScheduleEndpoint{}, services, httptest.NewRequest("GET", "/api/schedule", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[ScheduleResponse](t, rec)
	if resp.Teachers != 2 || resp.Records != 3 || resp.LastUpload != nil {
		t.Errorf("ScheduleResponse = %+v", resp)
	}

	rec = serve(&ResetScheduleEndpoint{}, services, httptest.NewRequest("DELETE", "/api/schedule", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}

	rec = serve(&GetScheduleEndpoint{}, services, httptest.NewRequest("GET", "/api/schedule", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status after reset = %d, want 404", rec.Code)
	}
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "[]", false},
		{"1", "[1]", false},
		{" 1, 3,4 ", "[1 3 4]", false},
		{"1,,2", "[1 2]", false},
		{"one", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePages(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && fmt.Sprint(got) != tt.want {
				t.Errorf("got %v, want %s", got, tt.want)
			}
		})
	}
}
