package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/timetable/internal/api"
	"github.com/jackzampolin/timetable/internal/schedule"
	"github.com/jackzampolin/timetable/internal/store"
)

var gridValue string

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Query the stored schedule without a server",
	Long: `Print week grids from the stored schedule.

Examples:
  timetable grid teacher 32A                  # Classes taught by 32A
  timetable grid teacher "Ani Rahma" -o table # Look a teacher up by name
  timetable grid teacher 32A,35A --value composite
  timetable grid class X-3 --value subject`,
}

var gridTeacherCmd = &cobra.Command{
	Use:   "teacher <code|name>",
	Short: "Show a teacher's week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := loadStoredDatabase(cmd)
		if err != nil {
			return err
		}
		var codes []string
		for _, part := range strings.Split(args[0], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if code, ok := schedule.LookupByName(db, part); ok {
				part = code
			}
			codes = append(codes, strings.ToUpper(part))
		}
		return runQuery(db, schedule.Selector{Teacher: codes}, gridValue)
	},
}

var gridClassCmd = &cobra.Command{
	Use:   "class <section>",
	Short: "Show a class section's week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := loadStoredDatabase(cmd)
		if err != nil {
			return err
		}
		return runQuery(db, schedule.Selector{Class: strings.ToUpper(strings.TrimSpace(args[0]))}, gridValue)
	},
}

func loadStoredDatabase(cmd *cobra.Command) (*schedule.Database, error) {
	ctx := cmd.Context()
	h, err := getHome()
	if err != nil {
		return nil, err
	}
	cfgMgr, err := loadConfig(h)
	if err != nil {
		return nil, err
	}
	cfg := cfgMgr.Get()
	logger, err := newLogger(cfg, io.Discard)
	if err != nil {
		return nil, err
	}
	st, err := openStore(ctx, cfg, h, logger)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	db, err := st.Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no schedule stored; run timetable extract --save <pdf> first")
	}
	return db, err
}

func runQuery(db *schedule.Database, sel schedule.Selector, value string) error {
	kind, err := schedule.ParseValueKind(value)
	if err != nil {
		return err
	}
	sel.Value = kind
	view, err := schedule.Query(db, sel)
	if err != nil {
		return err
	}
	return api.Output(view)
}

func init() {
	gridCmd.PersistentFlags().StringVar(&gridValue, "value", "", "Cell value: class, subject, teacher or composite")

	gridCmd.AddCommand(gridTeacherCmd)
	gridCmd.AddCommand(gridClassCmd)
	rootCmd.AddCommand(gridCmd)
}
