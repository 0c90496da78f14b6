package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/timetable/internal/api"
	"github.com/jackzampolin/timetable/internal/extract"
	"github.com/jackzampolin/timetable/internal/ingest"
	"github.com/jackzampolin/timetable/internal/pdfdoc"
)

var (
	extractSave    bool
	extractPages   []int
	extractOffset  int
	extractRecords bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract a schedule PDF without a server",
	Long: `Run the extraction pipeline on a local PDF and print the report.

Nothing is stored unless --save is given; then the result replaces the
schedule in the configured store, exactly like an upload to the server.

Examples:
  timetable extract jadwal.pdf                  # Report only
  timetable extract jadwal.pdf --records        # Print the extracted database
  timetable extract jadwal.pdf --pages 1,3      # Force the schedule pages
  timetable extract jadwal.pdf --offset 12 --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		h, err := getHome()
		if err != nil {
			return err
		}
		cfgMgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		logger, err := newLogger(cfg, os.Stderr)
		if err != nil {
			return err
		}

		icfg := ingest.Config{
			Reader:  pdfdoc.NewReader(cfg.PDFConfig(logger)),
			Options: func() (extract.Options, error) { return cfg.PipelineOptions() },
			Logger:  logger,
		}
		if extractSave {
			if err := h.EnsureExists(); err != nil {
				return err
			}
			st, err := openStore(ctx, cfg, h, logger)
			if err != nil {
				return err
			}
			defer st.Close()
			icfg.Store = st
			icfg.ArchiveDir = h.UploadsDir()
		}
		ingester, err := ingest.New(icfg)
		if err != nil {
			return err
		}

		req := ingest.Request{
			Data:          data,
			Filename:      filepath.Base(path),
			SchedulePages: extractPages,
			DryRun:        !extractSave,
		}
		if cmd.Flags().Changed("offset") {
			req.ColumnOffset = &extractOffset
		}

		res, err := ingester.Ingest(ctx, req)
		if err != nil {
			return err
		}
		if extractRecords {
			return api.Output(res.Database.Database)
		}
		return api.Output(res)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "Store the result in the configured store")
	extractCmd.Flags().IntSliceVar(&extractPages, "pages", nil, "0-based schedule page indices overriding detection")
	extractCmd.Flags().IntVar(&extractOffset, "offset", 0, "Column to class mapping offset (overrides pipeline.column_offset)")
	extractCmd.Flags().BoolVar(&extractRecords, "records", false, "Print the extracted roster and records instead of the report")

	rootCmd.AddCommand(extractCmd)
}
