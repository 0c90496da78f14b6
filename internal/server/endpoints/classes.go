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

// ClassList is the response for GET /api/classes.
type ClassList struct {
	Classes []string `json:"classes" yaml:"classes"`
}

func (l ClassList) TableHeader() []string { return []string{"CLASS"} }

func (l ClassList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Classes))
	for _, c := range l.Classes {
		rows = append(rows, []string{c})
	}
	return rows
}

// ListClassesEndpoint handles GET /api/classes.
type ListClassesEndpoint struct{}

func (e *ListClassesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/classes", e.handler
}

func (e *ListClassesEndpoint) RequiresData() bool { return true }

// handler godoc
//
//	@Summary		List class sections
//	@Description	Distinct class sections in tier, then section order
//	@Tags			classes
//	@Produce		json
//	@Success		200	{object}	ClassList
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/classes [get]
func (e *ListClassesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	db, ok := loadDatabase(w, r)
	if !ok {
		return
	}
	classes := schedule.Classes(db)
	if classes == nil {
		classes = []string{}
	}
	writeJSON(w, http.StatusOK, ClassList{Classes: classes})
}

func (e *ListClassesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List class sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ClassList
			if err := client.Get(cmd.Context(), "/api/classes", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ClassGridEndpoint handles GET /api/classes/{section}/grid.
type ClassGridEndpoint struct{}

func (e *ClassGridEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/classes/{section}/grid", e.handler
}

func (e *ClassGridEndpoint) RequiresData() bool { return true }

// handler godoc
//
//	@Summary		Class week grid
//	@Description	Period by weekday grid for one class section
//	@Tags			classes
//	@Produce		json
//	@Param			section	path		string	true	"Class section, e.g. X-3"
//	@Param			value	query		string	false	"Cell value: teacher, subject, class or composite (default teacher)"
//	@Success		200		{object}	schedule.View
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/classes/{section}/grid [get]
func (e *ClassGridEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	section := strings.ToUpper(strings.TrimSpace(r.PathValue("section")))
	if section == "" {
		writeError(w, http.StatusBadRequest, "class section is required")
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
	if !hasClass(db, section) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("class %q not found", section))
		return
	}

	view, err := schedule.Query(db, schedule.Selector{Class: section, Value: value})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func hasClass(db *schedule.Database, section string) bool {
	for _, r := range db.Records {
		if r.ClassSection == section {
			return true
		}
	}
	return false
}

func (e *ClassGridEndpoint) Command(getServerURL func() string) *cobra.Command {
	var value string
	cmd := &cobra.Command{
		Use:   "grid <section>",
		Short: "Show a class section's week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/classes/" + url.PathEscape(args[0]) + "/grid"
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
	cmd.Flags().StringVar(&value, "value", "", "Cell value: teacher, subject, class or composite")
	return cmd
}
