package whoisheuristic

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/dnsvitals/liveness/internal/netdial"
)

// scriptedDial returns a DialContextFunc whose response is keyed by addr
// (host:port), writing the canned text over a net.Pipe and closing it —
// enough to exercise DefaultClient's referral-following without real I/O.
func scriptedDial(t *testing.T, responses map[string]string) netdial.DialContextFunc {
	t.Helper()
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			buf := make([]byte, 512)
			_, _ = server.Read(buf)
			resp, ok := responses[addr]
			if !ok {
				t.Errorf("unexpected dial to %q", addr)
			}
			_, _ = server.Write([]byte(resp))
			server.Close()
		}()
		return client, nil
	}
}

func TestDefaultClient_Query_NoHintFollowsIanaReferral(t *testing.T) {
	dial := scriptedDial(t, map[string]string{
		"whois.iana.org:43":             "refer:      whois.example-registry.net\r\nwhois server: whois.example-registry.net\r\n",
		"whois.example-registry.net:43": "Domain Name: EXAMPLE.COM\r\nDomain Status: active\r\n",
	})
	c := &DefaultClient{Dial: dial}

	node, err := c.Query(context.Background(), "example.com", QueryOptions{Timeout: time.Second})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !strings.Contains(node.Raw, "active") {
		t.Errorf("expected root node raw text from the registry server, got %q", node.Raw)
	}
}

func TestDefaultClient_Query_ExplicitHintSkipsIana(t *testing.T) {
	dial := scriptedDial(t, map[string]string{
		"whois.explicit.example:43": "Domain Status: active\r\n",
	})
	c := &DefaultClient{Dial: dial}

	node, err := c.Query(context.Background(), "example.com", QueryOptions{Host: "whois.explicit.example", Timeout: time.Second})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !strings.Contains(node.Raw, "active") {
		t.Errorf("unexpected raw text: %q", node.Raw)
	}
}

func TestDefaultClient_Query_NoReferralErrors(t *testing.T) {
	dial := scriptedDial(t, map[string]string{
		"whois.iana.org:43": "% IANA WHOIS server\r\nno referral here\r\n",
	})
	c := &DefaultClient{Dial: dial}

	_, err := c.Query(context.Background(), "example.zzz", QueryOptions{Timeout: time.Second})
	if err == nil {
		t.Fatal("expected an error when IANA gives no referral")
	}
}

func TestFindReferral_RecognizesAllPrefixes(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ReferralServer: whois://whois.example.net", "whois.example.net"},
		{"Registrar WHOIS Server: whois.registrar.example", "whois.registrar.example"},
		{"whois server: whois.lowercase.example", "whois.lowercase.example"},
		{"Domain Status: active", ""},
	}
	for _, tc := range tests {
		if got := findReferral(tc.raw); got != tc.want {
			t.Errorf("findReferral(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTldOf(t *testing.T) {
	tests := map[string]string{
		"example.com":  "com",
		"example.co.uk": "uk",
		"example.com.": "com",
		"com":          "com",
	}
	for domain, want := range tests {
		if got := tldOf(domain); got != want {
			t.Errorf("tldOf(%q) = %q, want %q", domain, got, want)
		}
	}
}
