package liveness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"

	"github.com/dnsvitals/liveness/internal/apexcheck"
	"github.com/dnsvitals/liveness/internal/cachefacade"
	"github.com/dnsvitals/liveness/internal/coalesce"
	"github.com/dnsvitals/liveness/internal/dnsprobe"
	"github.com/dnsvitals/liveness/internal/fqdncheck"
	"github.com/dnsvitals/liveness/internal/httpclient"
	"github.com/dnsvitals/liveness/internal/idn"
	"github.com/dnsvitals/liveness/internal/model"
	"github.com/dnsvitals/liveness/internal/netdial"
	"github.com/dnsvitals/liveness/internal/ratelimit"
	"github.com/dnsvitals/liveness/internal/suffix"
	"github.com/dnsvitals/liveness/internal/whoisheuristic"
)

// doHRPS/doHBurst bound the default DoH HTTP client's outbound request
// rate; callers supplying their own Options.HTTPClient control their own
// pacing instead.
const (
	doHRPS   = 20
	doHBurst = 10
)

// ApexChecker decides whether a registerable apex domain is alive.
type ApexChecker func(ctx context.Context, domain string) ApexResult

// FqdnChecker decides whether a fully-qualified domain name is alive.
type FqdnChecker func(ctx context.Context, domain string) FqdnResult

// collaborators holds the shared inputs every checker needs: normalizer,
// suffix extractor, dialer, DoH HTTP client, logger and the resolved
// options. The NS/A/AAAA probes and the WhoisHeuristic are built from it
// separately, one Probe instance per record type.
type collaborators struct {
	normalizer idn.Normalizer
	extractor  suffix.Extractor
	dial       netdial.DialContextFunc
	httpClient *req.Client
	logger     *slog.Logger
	dns        DnsOptions
	whois      WhoisOptions
}

func newCollaborators(opts Options) (*collaborators, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dial, err := netdial.NewDialer(opts.Proxy)
	if err != nil {
		return nil, fmt.Errorf("liveness: building dialer: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient, err = httpclient.New(opts.Proxy, "", logger, false)
		if err != nil {
			return nil, fmt.Errorf("liveness: building HTTP client: %w", err)
		}
		// Bound outbound DoH request rate so bulk checks don't trip the
		// public resolvers' (Cloudflare/Google) abuse limits.
		httpclient.AttachRateLimit(httpClient, ratelimit.New(doHRPS, doHBurst))
	}

	return &collaborators{
		normalizer: idn.New(),
		extractor:  suffix.New(),
		dial:       dial,
		httpClient: httpClient,
		logger:     logger,
		dns:        opts.Dns.withDefaults(),
		whois:      opts.Whois.withDefaults(),
	}, nil
}

// newProbe builds a dnsprobe.Probe for a single record type from the
// shared DnsOptions.
func (c *collaborators) newProbe() (*dnsprobe.Probe, error) {
	servers := make([]dnsprobe.ServerSpec, 0, len(c.dns.DnsServers))
	for _, raw := range c.dns.DnsServers {
		spec, err := dnsprobe.ParseServerSpec(raw)
		if err != nil {
			return nil, fmt.Errorf("liveness: %w", err)
		}
		servers = append(servers, spec)
	}

	probe, err := dnsprobe.New(dnsprobe.Config{
		Servers:       servers,
		Confirmations: c.dns.Confirmations,
		MaxAttempts:   c.dns.MaxAttempts,
		Retry:         c.dns.retryPolicy(),
		Dial:          c.dial,
		HTTPClient:    c.httpClient,
		Logger:        c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("liveness: %w", err)
	}
	return probe, nil
}

func (c *collaborators) newHeuristic() (*whoisheuristic.Heuristic, error) {
	client := c.whois.Client
	if client == nil {
		client = &whoisheuristic.DefaultClient{Dial: c.dial}
	}

	tldMap := whoisheuristic.Merge(c.whois.CustomWhoisServersMapping)

	h, err := whoisheuristic.New(whoisheuristic.Options{
		Client:                 client,
		TldMap:                 tldMap,
		Timeout:                c.whois.Timeout,
		Retry:                  c.whois.retryPolicy(),
		Family:                 c.whois.Family,
		FollowDepth:            c.whois.Follow,
		WhoisErrorCountAsAlive: *c.whois.WhoisErrorCountAsAlive,
		Logger:                 c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("liveness: %w", err)
	}
	return h, nil
}

// NewApexChecker builds a stateful ApexChecker. Collaborators (DNS servers,
// WHOIS client, caches) are constructed once; each call to the returned
// function coalesces and caches by its own normalized input.
func NewApexChecker(opts Options) (ApexChecker, error) {
	collab, err := newCollaborators(opts)
	if err != nil {
		return nil, err
	}

	nsProbe, err := collab.newProbe()
	if err != nil {
		return nil, err
	}

	heuristic, err := collab.newHeuristic()
	if err != nil {
		return nil, err
	}

	cache := opts.ApexResultCache
	if cache == nil {
		cache = cachefacade.NewInMemory[model.ApexResult]()
	}

	checker, err := apexcheck.New(apexcheck.Config{
		Normalizer:             collab.normalizer,
		Extractor:              collab.extractor,
		Coalescer:              coalesce.New(),
		Cache:                  cache,
		NSProbe:                nsProbe,
		Whois:                  heuristic,
		WhoisErrorCountAsAlive: *collab.whois.WhoisErrorCountAsAlive,
		Logger:                 collab.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("liveness: %w", err)
	}

	return func(ctx context.Context, domain string) ApexResult {
		return checker.IsApexAlive(ctx, domain)
	}, nil
}

// NewFqdnChecker builds a stateful FqdnChecker. It composes its own
// ApexChecker internally plus independent A and AAAA probes.
func NewFqdnChecker(opts Options) (FqdnChecker, error) {
	collab, err := newCollaborators(opts)
	if err != nil {
		return nil, err
	}

	nsProbe, err := collab.newProbe()
	if err != nil {
		return nil, err
	}
	aProbe, err := collab.newProbe()
	if err != nil {
		return nil, err
	}
	aaaaProbe, err := collab.newProbe()
	if err != nil {
		return nil, err
	}

	heuristic, err := collab.newHeuristic()
	if err != nil {
		return nil, err
	}

	apexCache := opts.ApexResultCache
	if apexCache == nil {
		apexCache = cachefacade.NewInMemory[model.ApexResult]()
	}
	fqdnCache := opts.FqdnResultCache
	if fqdnCache == nil {
		fqdnCache = cachefacade.NewInMemory[model.FqdnResult]()
	}

	apexChecker, err := apexcheck.New(apexcheck.Config{
		Normalizer:             collab.normalizer,
		Extractor:              collab.extractor,
		Coalescer:              coalesce.New(),
		Cache:                  apexCache,
		NSProbe:                nsProbe,
		Whois:                  heuristic,
		WhoisErrorCountAsAlive: *collab.whois.WhoisErrorCountAsAlive,
		Logger:                 collab.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("liveness: %w", err)
	}

	checker, err := fqdncheck.New(fqdncheck.Config{
		Normalizer: collab.normalizer,
		Apex:       apexChecker,
		Coalescer:  coalesce.New(),
		Cache:      fqdnCache,
		AProbe:     aProbe,
		AAAAProbe:  aaaaProbe,
		Logger:     collab.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("liveness: %w", err)
	}

	return func(ctx context.Context, domain string) FqdnResult {
		return checker.IsFqdnAlive(ctx, domain)
	}, nil
}
