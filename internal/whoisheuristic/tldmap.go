package whoisheuristic

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tldmap.yaml
var embeddedTldMap []byte

// TldMap maps a lowercased TLD label (including A-label xn--… forms) to a
// WHOIS server hostname.
type TldMap map[string]string

// tldMapFile is the embedded/override file shape.
type tldMapFile struct {
	Servers map[string]string `yaml:"servers"`
}

// builtinTldMap parses the embedded default map. Panics only if the
// embedded asset itself is malformed — a build-time invariant, not a
// runtime failure mode.
func builtinTldMap() TldMap {
	var f tldMapFile
	if err := yaml.Unmarshal(embeddedTldMap, &f); err != nil {
		panic(fmt.Sprintf("whoisheuristic: embedded tldmap.yaml is malformed: %v", err))
	}
	m := make(TldMap, len(f.Servers))
	for tld, server := range f.Servers {
		m[strings.ToLower(tld)] = server
	}
	return m
}

// Merge returns the built-in TldMap overlaid with custom, whose entries win
// on key collision.
func Merge(custom TldMap) TldMap {
	merged := builtinTldMap()
	for tld, server := range custom {
		merged[strings.ToLower(tld)] = server
	}
	return merged
}

// Lookup returns the hint host for tld, if any.
func (m TldMap) Lookup(tld string) (string, bool) {
	server, ok := m[strings.ToLower(tld)]
	return server, ok
}
