// Package cli provides the Cobra command tree and output wiring for
// livenesscheck.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dnsvitals/liveness/internal/config"
	"github.com/dnsvitals/liveness/internal/version"
	"github.com/dnsvitals/liveness/internal/worker"
)

// newRootCmd builds the top-level Cobra command for livenesscheck.
// Callers must set stdout/stderr via cmd.SetOut / cmd.SetErr before Execute.
func newRootCmd() *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// INVARIANT: Cobra only executes the innermost PersistentPreRunE in the
	// command chain. If a future subcommand defines its own PersistentPreRunE,
	// the root hook will NOT run and d will be zero-valued. Do not add
	// PersistentPreRunE to any subcommand without also re-calling buildDeps.
	var d deps

	cmd := &cobra.Command{
		Use:   "livenesscheck",
		Short: "livenesscheck — domain liveness decision engine",
		Long: `livenesscheck decides whether a domain is "alive": whether its registerable
apex is a registered, delegated name, and whether the fully-qualified name
itself actually resolves.

It layers an NS-record probe, a WHOIS/RDAP fallback heuristic, and A/AAAA
record probes, with request coalescing and caching throughout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	registerPersistentFlags(cmd)

	cmd.Version = version.Version
	cmd.SetVersionTemplate("livenesscheck version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "check", Title: "Liveness Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newCheckCmd(&d),
		newConfigCmd(&d),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	cmd.MarkFlagsMutuallyExclusive("defang", "no-defang")

	return cmd
}

// registerPersistentFlags declares every persistent flag buildDeps/
// applyPersistentFlags consult.
func registerPersistentFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()

	f.String("config", "", "path to config file (default: OS-specific user config dir)")
	f.Bool("verbose", false, "enable debug logging")

	d := config.NewDefaultConfig()
	f.String("output", d.Global.Output, "output format: table, json, plain")
	f.Int("concurrency", d.Global.Concurrency, "number of concurrent workers")
	f.String("proxy", d.Global.Proxy, "proxy URL (http, https, or socks5)")
	f.String("user-agent", d.Global.UserAgent, "custom User-Agent string (kept in config only; DoH requests send the built-in default)")
	f.Bool("defang", d.Global.Defang, "defang domains/IPs/URLs in output")
	f.Bool("no-defang", d.Global.NoDefang, "never defang output")

	f.StringSlice("dns-server", d.Dns.Servers, "DNS server spec(s) to probe (e.g. https://1.1.1.1, udp://8.8.8.8)")
	f.Int("dns-confirmations", d.Dns.Confirmations, "number of confirming responses required")
	f.Bool("whois-error-as-alive", d.Whois.WhoisErrorCountAsAlive, "treat a WHOIS/RDAP failure as alive rather than dead")

	_ = cmd.RegisterFlagCompletionFunc("output", config.CompleteOutputFormat)
}

// Execute builds the root command and runs it against args (excluding the
// program name), honoring ctx cancellation (e.g. SIGINT) across in-flight
// DNS/WHOIS probes.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// resolveInputs returns positional args, or reads non-empty lines from stdin
// when no args are provided. Returns an error if stdin is an interactive
// terminal with no args (i.e. the user forgot to pass an argument or pipe
// input).
func resolveInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // uintptr→int is safe for file descriptors; they fit in int on all supported platforms
		return nil, fmt.Errorf("no input: pass a domain argument or pipe stdin")
	}
	return worker.ReadInputs(r)
}
