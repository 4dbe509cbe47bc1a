package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnsvitals/liveness"
	"github.com/dnsvitals/liveness/internal/config"
	"github.com/dnsvitals/liveness/internal/output"
	"github.com/dnsvitals/liveness/internal/whoisheuristic"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger     *slog.Logger
	cfg        *config.Config
	configFile string
	verbose    bool
	doDefang   bool
}

// buildDeps loads config overlaid with persistent flags and resolves
// logging/output settings shared by every subcommand.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	configPath, _ := cmd.Flags().GetString("config")
	resolvedPath := configPath
	if resolvedPath == "" {
		var err error
		resolvedPath, err = config.GetDefaultConfigPath(userConfigDir)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
	}

	cfg, err := config.Load(configPath, userConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyPersistentFlags(cmd, cfg)

	if cfg.Global.Defang && cfg.Global.NoDefang {
		return nil, fmt.Errorf("--defang and --no-defang are mutually exclusive")
	}
	if cfg.Global.Concurrency < 1 {
		return nil, fmt.Errorf("--concurrency must be at least 1, got %d", cfg.Global.Concurrency)
	}

	switch output.Format(cfg.Global.Output) {
	case output.FormatTable, output.FormatJSON, output.FormatPlain:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be \"table\", \"json\", or \"plain\"", cfg.Global.Output)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	doDefang := output.ResolveDefang(cfg.Global.Defang, cfg.Global.NoDefang)

	return &deps{cfg: cfg, configFile: resolvedPath, logger: logger, verbose: verbose, doDefang: doDefang}, nil
}

// applyPersistentFlags overlays any explicitly-set persistent flags onto cfg,
// so a flag always wins over the config file/defaults.
func applyPersistentFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if v, err := f.GetString("output"); err == nil && f.Changed("output") {
		cfg.Global.Output = v
	}
	if v, err := f.GetInt("concurrency"); err == nil && f.Changed("concurrency") {
		cfg.Global.Concurrency = v
	}
	if v, err := f.GetString("proxy"); err == nil && f.Changed("proxy") {
		cfg.Global.Proxy = v
	}
	if v, err := f.GetString("user-agent"); err == nil && f.Changed("user-agent") {
		cfg.Global.UserAgent = v
	}
	if v, err := f.GetBool("defang"); err == nil && f.Changed("defang") {
		cfg.Global.Defang = v
	}
	if v, err := f.GetBool("no-defang"); err == nil && f.Changed("no-defang") {
		cfg.Global.NoDefang = v
	}
	if v, err := f.GetStringSlice("dns-server"); err == nil && f.Changed("dns-server") {
		cfg.Dns.Servers = v
	}
	if v, err := f.GetInt("dns-confirmations"); err == nil && f.Changed("dns-confirmations") {
		cfg.Dns.Confirmations = v
	}
	if v, err := f.GetBool("whois-error-as-alive"); err == nil && f.Changed("whois-error-as-alive") {
		cfg.Whois.WhoisErrorCountAsAlive = v
	}
}

// userConfigDir is passed to config.Load for dependency-injected config
// path resolution, so tests can supply a fixed directory instead of the
// real OS user config dir.
func userConfigDir() (string, error) {
	return os.UserConfigDir()
}

// liveOptions converts the resolved config into liveness.Options.
func (d *deps) liveOptions() liveness.Options {
	customMap := whoisheuristic.TldMap(nil)
	if len(d.cfg.Whois.CustomWhoisServersMapping) > 0 {
		customMap = make(whoisheuristic.TldMap, len(d.cfg.Whois.CustomWhoisServersMapping))
		for k, v := range d.cfg.Whois.CustomWhoisServersMapping {
			customMap[k] = v
		}
	}
	errAsAlive := d.cfg.Whois.WhoisErrorCountAsAlive

	return liveness.Options{
		Dns: liveness.DnsOptions{
			DnsServers:      d.cfg.Dns.Servers,
			Confirmations:   d.cfg.Dns.Confirmations,
			MaxAttempts:     d.cfg.Dns.MaxAttempts,
			RetryCount:      d.cfg.Dns.RetryCount,
			RetryFactor:     d.cfg.Dns.RetryFactor,
			RetryMinTimeout: d.cfg.Dns.RetryMinTimeout,
			RetryMaxTimeout: d.cfg.Dns.RetryMaxTimeout,
		},
		Whois: liveness.WhoisOptions{
			Timeout:                   d.cfg.Whois.Timeout,
			RetryCount:                d.cfg.Whois.RetryCount,
			RetryFactor:               d.cfg.Whois.RetryFactor,
			RetryMinTimeout:           d.cfg.Whois.RetryMinTimeout,
			RetryMaxTimeout:           d.cfg.Whois.RetryMaxTimeout,
			Family:                    d.cfg.Whois.Family,
			Follow:                    d.cfg.Whois.Follow,
			CustomWhoisServersMapping: customMap,
			WhoisErrorCountAsAlive:    &errAsAlive,
		},
		Proxy:  d.cfg.Global.Proxy,
		Logger: d.logger,
	}
}

// writeResult formats and writes rows to stdout, applying defanging if configured.
func writeResult(stdout io.Writer, d *deps, rows Rows) error {
	w := stdout
	if d.doDefang {
		w = &output.DefangWriter{Inner: stdout}
	}
	if err := output.Write(w, output.Format(d.cfg.Global.Output), rows); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
