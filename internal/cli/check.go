package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dnsvitals/liveness"
	"github.com/dnsvitals/liveness/internal/worker"
)

const (
	modeApex = "apex"
	modeFqdn = "fqdn"
)

func newCheckCmd(d *deps) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:     "check [domain...]",
		Short:   "Decide whether one or more domains are alive",
		GroupID: "check",
		Long: `check decides whether a domain is "alive" by layering an NS-record probe,
a WHOIS/RDAP fallback heuristic, and (in fqdn mode) A/AAAA record probes on
top of the registerable apex's verdict.

fqdn mode (default) checks the full domain as given, delegating to the
registerable apex's liveness first. apex mode reduces the input to its
registerable apex and checks only that.

Multiple inputs can be supplied as arguments or piped via stdin (one per
line). Bulk stdin input is processed concurrently (see --concurrency).`,
		Example: `  # Check a single FQDN
  livenesscheck check www.example.com

  # Check only the registerable apex
  livenesscheck check --mode apex example.com

  # Bulk input from stdin, JSON output
  cat domains.txt | livenesscheck check --output json`,
		Args: cobra.ArbitraryArgs,
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != modeApex && mode != modeFqdn {
				return fmt.Errorf("invalid --mode %q: must be %q or %q", mode, modeApex, modeFqdn)
			}

			inputs, err := resolveInputs(cmd, args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no input: supply a domain argument or pipe via stdin")
			}

			check, err := buildCheckFunc(mode, d)
			if err != nil {
				return err
			}

			rows := runChecks(cmd.Context(), d, inputs, check)
			return writeResult(cmd.OutOrStdout(), d, rows)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", modeFqdn, "check mode: apex or fqdn")
	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{modeApex, modeFqdn}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// buildCheckFunc constructs the liveness checker for the selected mode and
// adapts it to a single domain -> Row function, regardless of which
// checker shape backs it.
func buildCheckFunc(mode string, d *deps) (func(ctx context.Context, domain string) Row, error) {
	opts := d.liveOptions()

	switch mode {
	case modeApex:
		checker, err := liveness.NewApexChecker(opts)
		if err != nil {
			return nil, fmt.Errorf("building apex checker: %w", err)
		}
		return func(ctx context.Context, domain string) Row {
			result := checker(ctx, domain)
			row := Row{Domain: domain, Alive: result.Alive}
			if result.RegisterableDomain != nil {
				row.RegisterableDomain = *result.RegisterableDomain
			}
			return row
		}, nil
	default:
		checker, err := liveness.NewFqdnChecker(opts)
		if err != nil {
			return nil, fmt.Errorf("building fqdn checker: %w", err)
		}
		return func(ctx context.Context, domain string) Row {
			result := checker(ctx, domain)
			row := Row{Domain: domain, Alive: result.Alive}
			if result.RegisterableDomain != nil {
				row.RegisterableDomain = *result.RegisterableDomain
				alive := result.RegisterableDomainAlive
				row.RegisterableDomainAlive = &alive
			}
			return row
		}, nil
	}
}

// runChecks fans inputs out across a worker pool sized by cfg.Global.Concurrency
// and collects results into Rows, preserving input order regardless of the
// order results complete in.
func runChecks(ctx context.Context, d *deps, inputs []string, check func(context.Context, string) Row) Rows {
	pool := worker.NewPool(d.cfg.Global.Concurrency, d.logger)

	jobs := make(chan worker.Input, len(inputs))
	for _, in := range inputs {
		jobs <- in
	}
	close(jobs)

	results := pool.Process(ctx, jobs, func(ctx context.Context, input worker.Input) (interface{}, error) {
		domain := input.(string)
		return check(ctx, domain), nil
	})

	byDomain := make(map[string]Row, len(inputs))
	for res := range results {
		domain := res.Input.(string)
		if res.Error != nil {
			byDomain[domain] = Row{Domain: domain, Error: res.Error.Error()}
			continue
		}
		byDomain[domain] = res.Value.(Row)
	}

	rows := make(Rows, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, byDomain[in])
	}
	return rows
}
