package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"photoarchive/internal/server"
	"photoarchive/pkg/config"
	"photoarchive/pkg/logger"
)

// rootOptions holds the flags that override the loaded configuration.
type rootOptions struct {
	configPath string
	photoDir   string
	host       string
	port       int
	logFile    string
	logOff     bool
	logLevel   string
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photoarchive",
		Short: "Stream photo directories as ZIP archives over HTTP",
		Long: "photoarchive serves every directory under the archive root as a ZIP download.\n" +
			"Archives are produced on the fly by an external command and streamed to the\n" +
			"client chunk by chunk, so nothing is buffered on disk or in memory.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file")

	flags = cmd.Flags()
	flags.StringVar(&opts.photoDir, "photo-dir", "", "Directory holding one sub-directory per archive")
	flags.StringVar(&opts.host, "host", "", "Address to listen on")
	flags.IntVar(&opts.port, "port", 0, "Port to listen on")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file, empty for standard output")
	flags.BoolVar(&opts.logOff, "log-off", false, "Disable logging")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")

	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

func Execute() error {
	return newRootCmd(&rootOptions{}).Execute()
}

// loadConfig reads the configuration and applies the flags the user set
// explicitly.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, string, error) {
	cfg, source, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("photo-dir") {
		cfg.Archive.RootDir = opts.photoDir
	}
	if flags.Changed("host") {
		cfg.Server.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	if flags.Changed("log-off") {
		cfg.Logging.Enabled = !opts.logOff
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, source, nil
}

func runServer(cmd *cobra.Command, opts *rootOptions) error {
	cfg, source, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, closer, err := logger.Open(logger.Options{
		Enabled: cfg.Logging.Enabled,
		File:    cfg.Logging.File,
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()
	logger.SetDefault(log)

	log.Info("starting photoarchive", "configSource", source, "address", cfg.GetServerAddress())

	srv, err := server.New(cfg, log.WithField("mode", "server"))
	if err != nil {
		log.Error("failed to create server", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	return nil
}
