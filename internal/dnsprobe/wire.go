package dnsprobe

import (
	"fmt"

	"github.com/miekg/dns"
)

// RecordType is the DNS RR type a probe queries for.
type RecordType = uint16

const (
	TypeNS   RecordType = dns.TypeNS
	TypeA    RecordType = dns.TypeA
	TypeAAAA RecordType = dns.TypeAAAA
)

// buildQuery encodes a DNS query for name/recordType into wire format using
// the standard github.com/miekg/dns Msg API (SetQuestion + Pack).
func buildQuery(name string, recordType RecordType) ([]byte, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), recordType)
	m.RecursionDesired = true

	data, err := m.Pack()
	if err != nil {
		return nil, fmt.Errorf("dnsprobe: packing query: %w", err)
	}
	return data, nil
}

// answerCount decodes a wire-format DNS response and returns the number of
// records in its answer section. DnsProbe only needs the count — it never
// inspects the records themselves — a response confirms iff its answer
// section is non-empty.
func answerCount(data []byte) (int, error) {
	m := new(dns.Msg)
	if err := m.Unpack(data); err != nil {
		return 0, fmt.Errorf("dnsprobe: unpacking response: %w", err)
	}
	return len(m.Answer), nil
}
