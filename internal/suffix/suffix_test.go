package suffix

import "testing"

func TestApex_BareHostname(t *testing.T) {
	apex, ok := New().Apex("www.example.com")
	if !ok || apex != "example.com" {
		t.Errorf("Apex() = %q, %v, want example.com, true", apex, ok)
	}
}

func TestApex_URLInput(t *testing.T) {
	apex, ok := New().Apex("https://www.example.com/path?q=1")
	if !ok || apex != "example.com" {
		t.Errorf("Apex() = %q, %v, want example.com, true", apex, ok)
	}
}

func TestApex_HostWithPort(t *testing.T) {
	apex, ok := New().Apex("example.com:8443")
	if !ok || apex != "example.com" {
		t.Errorf("Apex() = %q, %v, want example.com, true", apex, ok)
	}
}

func TestApex_MultiLabelPublicSuffix(t *testing.T) {
	apex, ok := New().Apex("www.example.co.uk")
	if !ok || apex != "example.co.uk" {
		t.Errorf("Apex() = %q, %v, want example.co.uk, true", apex, ok)
	}
}

func TestApex_IPLiteralHasNoApex(t *testing.T) {
	_, ok := New().Apex("203.0.113.5")
	if ok {
		t.Error("expected no apex for an IPv4 literal")
	}
}

func TestApex_BracketedIPv6HasNoApex(t *testing.T) {
	_, ok := New().Apex("[2001:db8::1]")
	if ok {
		t.Error("expected no apex for a bracketed IPv6 literal")
	}
}

func TestApex_TrailingRootDotIgnored(t *testing.T) {
	apex, ok := New().Apex("example.com.")
	if !ok || apex != "example.com" {
		t.Errorf("Apex() = %q, %v, want example.com, true", apex, ok)
	}
}

func TestApex_PrivateSuffixNotRegisterable(t *testing.T) {
	// github.io is a PSL private entry, not an ICANN one — under the ICANN-only
	// policy the public suffix is "io", so the registerable apex is "github.io"
	// itself rather than "foo.github.io"; this exercises the ICANN-only path
	// rather than asserting failure.
	apex, ok := New().Apex("foo.github.io")
	if !ok {
		t.Fatal("expected an apex under the ICANN-only policy")
	}
	if apex != "github.io" {
		t.Errorf("Apex() = %q, want github.io (ICANN treats 'io' as the public suffix)", apex)
	}
}

func TestApex_EmptyInput(t *testing.T) {
	_, ok := New().Apex("")
	if ok {
		t.Error("expected no apex for empty input")
	}
}

func TestTld_SingleLabel(t *testing.T) {
	tld, ok := New().Tld("example.com")
	if !ok || tld != "com" {
		t.Errorf("Tld() = %q, %v, want com, true", tld, ok)
	}
}

func TestTld_MultiLabel(t *testing.T) {
	tld, ok := New().Tld("example.co.uk")
	if !ok || tld != "co.uk" {
		t.Errorf("Tld() = %q, %v, want co.uk, true", tld, ok)
	}
}

func TestTld_UnknownSuffixNotIcann(t *testing.T) {
	_, ok := New().Tld("example.this-is-not-a-real-tld-zzzzzz")
	if ok {
		t.Error("expected ok=false for a non-ICANN/unknown suffix")
	}
}

func TestTld_EmptyInput(t *testing.T) {
	_, ok := New().Tld("")
	if ok {
		t.Error("expected ok=false for empty input")
	}
}
