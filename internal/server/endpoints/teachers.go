package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/timetable/internal/api"
	"github.com/jackzampolin/timetable/internal/schedule"
)

// Teacher is one roster entry with its code.
type Teacher struct {
	Code    string `json:"code" yaml:"code"`
	Name    string `json:"name" yaml:"name"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// TeacherList is the response for GET /api/teachers.
type TeacherList struct {
	Teachers []Teacher `json:"teachers" yaml:"teachers"`
}

func (l TeacherList) TableHeader() []string { return []string{"CODE", "NAME", "SUBJECT"} }

func (l TeacherList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Teachers))
	for _, t := range l.Teachers {
		rows = append(rows, []string{t.Code, t.Name, t.Subject})
	}
	return rows
}

// ListTeachersEndpoint handles GET /api/teachers.
type ListTeachersEndpoint struct{}

func (e *ListTeachersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/teachers", e.handler
}

func (e *ListTeachersEndpoint) RequiresData() bool { return true }

// handler godoc
//
//	@Summary		List teachers
//	@Description	The roster sorted by name, then code
//	@Tags			teachers
//	@Produce		json
//	@Success		200	{object}	TeacherList
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/teachers [get]
func (e *ListTeachersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	db, ok := loadDatabase(w, r)
	if !ok {
		return
	}
	resp := TeacherList{Teachers: []Teacher{}}
	for _, t := range schedule.Teachers(db) {
		resp.Teachers = append(resp.Teachers, Teacher{Code: t.Code, Name: t.Name, Subject: t.Subject})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListTeachersEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teachers from the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp TeacherList
			if err := client.Get(cmd.Context(), "/api/teachers", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// TeacherGridEndpoint handles GET /api/teachers/{code}/grid.
type TeacherGridEndpoint struct{}

func (e *TeacherGridEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/teachers/{code}/grid", e.handler
}

func (e *TeacherGridEndpoint) RequiresData() bool { return true }

// handler godoc
//
//	@Summary		Teacher week grid
//	@Description	Period by weekday grid for one or more teachers. code may be a comma-separated list of codes or a teacher name.
//	@Tags			teachers
//	@Produce		json
//	@Param			code	path		string	true	"Teacher code(s) or name"
//	@Param			value	query		string	false	"Cell value: class, subject, teacher or composite (default class)"
//	@Success		200		{object}	schedule.View
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/teachers/{code}/grid [get]
func (e *TeacherGridEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("code")
	if strings.TrimSpace(raw) == "" {
		writeError(w, http.StatusBadRequest, "teacher code is required")
		return
	}
	value, err := schedule.ParseValueKind(r.URL.Query().Get("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	db, ok := loadDatabase(w, r)
	if !ok {
		return
	}

	codes, missing := resolveTeachers(db, raw)
	if missing != "" {
		writeError(w, http.StatusNotFound, fmt.Sprintf("teacher %q not found", missing))
		return
	}

	view, err := schedule.Query(db, schedule.Selector{Teacher: codes, Value: value})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// resolveTeachers maps each comma-separated part of raw to a teacher code.
// A part may be a roster code in any case, a roster name, or a code that only
// appears in the grid. missing names the first part that is none of these.
func resolveTeachers(db *schedule.Database, raw string) (codes []string, missing string) {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, ok := resolveTeacher(db, part)
		if !ok {
			return nil, part
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil, raw
	}
	return codes, ""
}

func resolveTeacher(db *schedule.Database, s string) (string, bool) {
	for _, c := range []string{s, strings.ToUpper(s)} {
		if _, ok := db.Roster[c]; ok {
			return c, true
		}
	}
	if code, ok := schedule.LookupByName(db, s); ok {
		return code, true
	}
	for _, c := range []string{s, strings.ToUpper(s)} {
		for _, rec := range db.Records {
			if rec.HasTeacher(c) {
				return c, true
			}
		}
	}
	return "", false
}

func (e *TeacherGridEndpoint) Command(getServerURL func() string) *cobra.Command {
	var value string
	cmd := &cobra.Command{
		Use:   "grid <code|name>",
		Short: "Show a teacher's week",
		Long: `Show the period by weekday grid of a teacher.

Pass a code (32A), several codes (32A,35A) or the teacher's name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/teachers/" + url.PathEscape(args[0]) + "/grid"
			if value != "" {
				path += "?value=" + url.QueryEscape(value)
			}
			client := api.NewClient(getServerURL())
			var resp schedule.View
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(&resp)
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "Cell value: class, subject, teacher or composite")
	return cmd
}
