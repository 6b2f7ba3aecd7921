package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"photoarchive/pkg/config"
)

const defaultConfigFile = "config.yaml"

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration source: %s\n\n", source)
			renderConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
			}

			if err := config.GenerateDefaultConfig(path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func renderConfig(w io.Writer, cfg *config.Config) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Setting", "Value"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	healthAddr := cfg.Health.Address
	if healthAddr == "" {
		healthAddr = "disabled"
	}
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "stdout"
	}

	table.AppendBulk([][]string{
		{"server.address", cfg.GetServerAddress()},
		{"server.shutdownTimeout", cfg.Server.ShutdownTimeout.String()},
		{"archive.rootDir", cfg.Archive.RootDir},
		{"archive.command", strings.Join(cfg.Archive.Command, " ")},
		{"archive.chunkSize", strconv.Itoa(cfg.Archive.ChunkSize)},
		{"archive.gracePeriod", cfg.Archive.GracePeriod.String()},
		{"archive.contentType", cfg.Archive.ContentType},
		{"archive.maxConcurrent", strconv.FormatInt(cfg.Archive.MaxConcurrent, 10)},
		{"pages.index", cfg.Pages.Index},
		{"pages.notFound", cfg.Pages.NotFound},
		{"health.address", healthAddr},
		{"logging.enabled", strconv.FormatBool(cfg.Logging.Enabled)},
		{"logging.file", logFile},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
	})
	table.Render()
}
