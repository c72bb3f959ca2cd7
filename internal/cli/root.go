// Package cli implements the zotime command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ngrash/zotime/instant"
	"github.com/ngrash/zotime/internal/config"
	"github.com/ngrash/zotime/tz"
)

// RootOptions holds global flags and the state built from them before a
// subcommand runs.
type RootOptions struct {
	ConfigPath string
	Zone       string
	Verbose    bool

	logger   *slog.Logger
	resolver *tz.Resolver
	builder  instant.Builder
}

// NewRootCommand creates the root command for the zotime CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "zotime",
		Short: "Timezone-aware instants for schedulers",
		Long: `Inspect points in time in IANA timezones.

Epochs are Unix seconds and may be fractional. Zones are IANA names like
America/Los_Angeles, UTC, fixed offsets like +09:00, or abbreviations
like PST.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVarP(&opts.Zone, "zone", "z", "", "timezone (default from config, $TZ or the local zone)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewValidCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(o.ConfigPath); err != nil {
			return err
		}
	}
	if o.Zone != "" {
		cfg.DefaultZone = o.Zone
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	// Logs go to stderr so they never mix with command output.
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	r, err := cfg.Resolver(o.logger)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if o.Zone != "" {
		if _, err := r.Resolve(o.Zone); err != nil {
			return fmt.Errorf("--zone: %w", err)
		}
	}
	o.resolver = r
	o.builder = instant.NewBuilder(r)
	o.logger.Debug("ready", "config", o.ConfigPath, "default_zone", r.DefaultName())
	return nil
}
