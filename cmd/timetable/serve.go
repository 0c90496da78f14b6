package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/timetable/internal/extract"
	"github.com/jackzampolin/timetable/internal/ingest"
	"github.com/jackzampolin/timetable/internal/pdfdoc"
	"github.com/jackzampolin/timetable/internal/server"
	"github.com/jackzampolin/timetable/internal/server/endpoints"
	"github.com/jackzampolin/timetable/internal/svcctx"
)

var (
	serveHost      string
	servePort      string
	serveMaxUpload int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the timetable server",
	Long: `Start the timetable HTTP server.

The server stores one schedule at a time. Uploading a PDF replaces it;
queries answer 404 until the first upload.

The server provides:
  - /health                       - Basic server health check
  - /ready                        - Readiness check (includes store status)
  - /api/schedule                 - Upload (POST), summary (GET), reset (DELETE)
  - /api/teachers[/{code}/grid]   - Roster and teacher week grids
  - /api/classes[/{section}/grid] - Class sections and class week grids
  - /swagger.json                 - OpenAPI document

Configuration changes to the pipeline section apply to the next upload.

Examples:
  timetable serve                    # Start on the configured port
  timetable serve --port 3000        # Start on custom port
  timetable serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Get home directory
		h, err := getHome()
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cfgMgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		logger, err := newLogger(cfg, os.Stdout)
		if err != nil {
			return err
		}
		cfgMgr.SetLogger(logger)
		if f := cfgMgr.ConfigFile(); f != "" {
			logger.Info("watching config file", "path", f)
			cfgMgr.WatchConfig()
		}

		st, err := openStore(ctx, cfg, h, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		ingester, err := ingest.New(ingest.Config{
			Reader: pdfdoc.NewReader(cfg.PDFConfig(logger)),
			Store:  st,
			Options: func() (extract.Options, error) {
				return cfgMgr.Get().PipelineOptions()
			},
			ArchiveDir: h.UploadsDir(),
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host: host,
			Port: port,
			Services: &svcctx.Services{
				Store:    st,
				Ingester: ingester,
				Config:   cfgMgr,
				Logger:   logger,
				Home:     h,
			},
			Endpoints: endpoints.Config{MaxUploadBytes: serveMaxUpload},
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")
	serveCmd.Flags().Int64Var(&serveMaxUpload, "max-upload", 32<<20, "Maximum upload size in bytes")

	rootCmd.AddCommand(serveCmd)
}
