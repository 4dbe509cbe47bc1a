package liveness

import (
	"log/slog"
	"time"

	"github.com/imroc/req/v3"

	"github.com/dnsvitals/liveness/internal/cachefacade"
	"github.com/dnsvitals/liveness/internal/dnsprobe"
	"github.com/dnsvitals/liveness/internal/model"
	"github.com/dnsvitals/liveness/internal/whoisheuristic"
)

// DefaultDnsServers is the default DnsServerSpec list: Cloudflare and
// Google DoH endpoints.
var DefaultDnsServers = []string{
	"https://1.1.1.1",
	"https://1.0.0.1",
	"https://8.8.8.8",
	"https://8.8.4.4",
}

// DnsOptions configures DnsProbe instances.
type DnsOptions struct {
	// DnsServers is a list of DnsServerSpec strings (see dnsprobe.ParseServerSpec).
	// Defaults to DefaultDnsServers.
	DnsServers []string

	// Confirmations is the number of servers that must agree before a
	// record type is considered confirmed. Default 2.
	Confirmations int

	// MaxAttempts caps the number of servers tried per Confirm call,
	// clamped to len(DnsServers). Zero means "use len(DnsServers)".
	MaxAttempts int

	RetryCount      int
	RetryFactor     float64
	RetryMinTimeout time.Duration
	RetryMaxTimeout time.Duration
}

func (o DnsOptions) withDefaults() DnsOptions {
	if len(o.DnsServers) == 0 {
		o.DnsServers = DefaultDnsServers
	}
	if o.Confirmations <= 0 {
		o.Confirmations = 2
	}
	if o.RetryCount <= 0 {
		o.RetryCount = 3
	}
	if o.RetryFactor <= 0 {
		o.RetryFactor = 2
	}
	if o.RetryMinTimeout <= 0 {
		o.RetryMinTimeout = 1000 * time.Millisecond
	}
	if o.RetryMaxTimeout <= 0 {
		o.RetryMaxTimeout = 16000 * time.Millisecond
	}
	return o
}

func (o DnsOptions) retryPolicy() dnsprobe.RetryPolicy {
	return dnsprobe.RetryPolicy{
		Count:      o.RetryCount,
		Factor:     o.RetryFactor,
		MinTimeout: o.RetryMinTimeout,
		MaxTimeout: o.RetryMaxTimeout,
	}
}

// WhoisOptions configures WhoisHeuristic.
type WhoisOptions struct {
	Timeout time.Duration

	RetryCount      int
	RetryFactor     float64
	RetryMinTimeout time.Duration
	RetryMaxTimeout time.Duration

	// Family is the preferred IP family (4 or 6) passed to the WHOIS
	// client. Zero means no preference.
	Family int

	// Follow is the referral follow depth passed to the WHOIS client.
	Follow int

	// CustomWhoisServersMapping is merged over the built-in TldWhoisMap;
	// caller keys win.
	CustomWhoisServersMapping whoisheuristic.TldMap

	// WhoisErrorCountAsAlive is the apex verdict used when the WHOIS
	// client throws a QueryError. Default true.
	WhoisErrorCountAsAlive *bool

	// Client overrides the default TCP/43 WHOIS client, e.g. for testing.
	Client whoisheuristic.Client
}

func (o WhoisOptions) withDefaults() WhoisOptions {
	if o.Timeout <= 0 {
		o.Timeout = 5000 * time.Millisecond
	}
	if o.RetryCount <= 0 {
		o.RetryCount = 3
	}
	if o.RetryFactor <= 0 {
		o.RetryFactor = 2
	}
	if o.RetryMinTimeout <= 0 {
		o.RetryMinTimeout = 1000 * time.Millisecond
	}
	if o.RetryMaxTimeout <= 0 {
		o.RetryMaxTimeout = 16000 * time.Millisecond
	}
	if o.WhoisErrorCountAsAlive == nil {
		t := true
		o.WhoisErrorCountAsAlive = &t
	}
	return o
}

func (o WhoisOptions) retryPolicy() dnsprobe.RetryPolicy {
	return dnsprobe.RetryPolicy{
		Count:      o.RetryCount,
		Factor:     o.RetryFactor,
		MinTimeout: o.RetryMinTimeout,
		MaxTimeout: o.RetryMaxTimeout,
	}
}

// Options configures NewApexChecker / NewFqdnChecker.
type Options struct {
	Dns   DnsOptions
	Whois WhoisOptions

	// Proxy, if set, routes the default DoH HTTP client through the proxy
	// (http, https or socks5). DNS tcp/tls and WHOIS TCP/43 dials are
	// tunnelled only when it is a socks5:// URL; otherwise they dial directly.
	Proxy string

	// HTTPClient overrides the req.Client used by the DoH resolvers. When
	// nil, one is built from Proxy.
	HTTPClient *req.Client

	// ApexResultCache / FqdnResultCache are caller-supplied caches; nil
	// means a default in-memory cache is used.
	ApexResultCache cachefacade.Cache[model.ApexResult]
	FqdnResultCache cachefacade.Cache[model.FqdnResult]

	Logger *slog.Logger
}
