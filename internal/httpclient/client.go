// Package httpclient builds the req.Client used by the DoH resolver,
// wiring proxy, user-agent, and debug-logging configuration.
package httpclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/imroc/req/v3"

	"github.com/dnsvitals/liveness/internal/version"
)

// DefaultUserAgent is sent when no explicit value is configured.
var DefaultUserAgent = "dnsvitals-liveness/" + version.Version + " (+https://github.com/dnsvitals/liveness)"

// ResolveProxy returns the proxy value that will actually be used: an
// explicit value always wins; otherwise the standard proxy env vars are
// checked and "<from environment>" is reported if any are set.
func ResolveProxy(proxy string) string {
	if proxy != "" {
		return proxy
	}
	for _, env := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy", "ALL_PROXY", "all_proxy"} {
		if os.Getenv(env) != "" {
			return "<from environment>"
		}
	}
	return ""
}

// New builds a *req.Client with optional proxy and user-agent
// configuration. proxy supports http://, https://, and socks5:// URLs via
// req's SetProxyURL; when empty, HTTP_PROXY/HTTPS_PROXY/NO_PROXY env vars
// are honoured automatically. When debug is true and logger is non-nil, an
// OnAfterResponse hook logs method/URL/status at DEBUG level.
func New(proxy, userAgent string, logger *slog.Logger, debug bool) (*req.Client, error) {
	client := req.NewClient()

	if userAgent != "" {
		client.SetUserAgent(userAgent)
	} else {
		client.SetUserAgent(DefaultUserAgent)
	}

	if proxy != "" {
		if err := validateProxy(proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", proxy, err)
		}
		client.SetProxyURL(proxy)
	} else {
		client.SetProxy(http.ProxyFromEnvironment)
	}

	if debug && logger != nil {
		attachDebugHook(client, logger)
	}

	return client, nil
}

func attachDebugHook(client *req.Client, logger *slog.Logger) {
	client.OnAfterResponse(func(_ *req.Client, resp *req.Response) error {
		if resp.Request == nil || resp.Request.RawRequest == nil {
			return nil
		}
		logger.Debug("http response",
			"method", resp.Request.RawRequest.Method,
			"url", resp.Request.RawRequest.URL.String(),
			"status", resp.StatusCode,
		)
		if !resp.IsSuccessState() {
			body := resp.String()
			if len(body) > 512 {
				body = body[:512]
			}
			logger.Debug("http error body", "status", resp.StatusCode, "body", body)
		}
		return nil
	})
}

func validateProxy(proxy string) error {
	for _, scheme := range []string{"http://", "https://", "socks5://"} {
		if len(proxy) >= len(scheme) && proxy[:len(scheme)] == scheme {
			return nil
		}
	}
	return fmt.Errorf("proxy scheme must be http://, https://, or socks5://")
}
