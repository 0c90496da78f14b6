package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/timetable/internal/api"
	"github.com/jackzampolin/timetable/internal/config"
	"github.com/jackzampolin/timetable/internal/home"
	"github.com/jackzampolin/timetable/internal/store"
	"github.com/jackzampolin/timetable/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Teacher schedule extraction from school timetable PDFs",
	Long: `Timetable turns a school's teacher-schedule PDF into a queryable database.

The pipeline:
  - Finds the roster page (teacher code, name, subject) and the grid pages
  - Reads the ruled grid and infers the weekday of every row
  - Corrects known misprints in teacher codes
  - Answers per-teacher and per-class week grids`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.timetable/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "timetable home directory (default: ~/.timetable)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml, json or table",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// getHome resolves the home directory from --home.
func getHome() (*home.Dir, error) {
	return home.New(homeDir)
}

// loadConfig reads configuration from --config or the home directory.
func loadConfig(h *home.Dir) (*config.Manager, error) {
	return config.NewManager(cfgFile, h.Path())
}

// newLogger builds a text logger at the configured level.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// openStore opens the configured schedule store under the home data directory.
func openStore(ctx context.Context, cfg *config.Config, h *home.Dir, logger *slog.Logger) (store.Store, error) {
	return store.Open(ctx, cfg.StoreConfig(h.DataPath(), logger))
}
