package config

import "time"

// Config represents the complete livenesscheck configuration.
type Config struct {
	Global GlobalConfig `yaml:"global" mapstructure:"global"`
	Dns    DnsConfig    `yaml:"dns" mapstructure:"dns"`
	Whois  WhoisConfig  `yaml:"whois" mapstructure:"whois"`
}

// GlobalConfig holds global application settings.
type GlobalConfig struct {
	// Output format: table, json, plain
	Output string `yaml:"output" mapstructure:"output"`

	// Number of concurrent workers for bulk processing
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// Proxy URL (supports HTTP, HTTPS, SOCKS5)
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// Custom User-Agent string
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Enable output defanging
	Defang bool `yaml:"defang" mapstructure:"defang"`

	// Disable output defanging (takes precedence over Defang)
	NoDefang bool `yaml:"no_defang" mapstructure:"no_defang"`
}

// DnsConfig tunes the NS/A/AAAA confirmation probes, mirroring
// liveness.DnsOptions.
type DnsConfig struct {
	Servers         []string      `yaml:"servers" mapstructure:"servers"`
	Confirmations   int           `yaml:"confirmations" mapstructure:"confirmations"`
	MaxAttempts     int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	RetryCount      int           `yaml:"retry_count" mapstructure:"retry_count"`
	RetryFactor     float64       `yaml:"retry_factor" mapstructure:"retry_factor"`
	RetryMinTimeout time.Duration `yaml:"retry_min_timeout" mapstructure:"retry_min_timeout"`
	RetryMaxTimeout time.Duration `yaml:"retry_max_timeout" mapstructure:"retry_max_timeout"`
}

// WhoisConfig tunes the WHOIS/RDAP fallback heuristic, mirroring
// liveness.WhoisOptions.
type WhoisConfig struct {
	Timeout                   time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	RetryCount                int               `yaml:"retry_count" mapstructure:"retry_count"`
	RetryFactor               float64           `yaml:"retry_factor" mapstructure:"retry_factor"`
	RetryMinTimeout           time.Duration     `yaml:"retry_min_timeout" mapstructure:"retry_min_timeout"`
	RetryMaxTimeout           time.Duration     `yaml:"retry_max_timeout" mapstructure:"retry_max_timeout"`
	Family                    int               `yaml:"family" mapstructure:"family"`
	Follow                    int               `yaml:"follow" mapstructure:"follow"`
	CustomWhoisServersMapping map[string]string `yaml:"custom_whois_servers_mapping" mapstructure:"custom_whois_servers_mapping"`
	WhoisErrorCountAsAlive    bool              `yaml:"whois_error_count_as_alive" mapstructure:"whois_error_count_as_alive"`
}

// NewDefaultConfig returns a Config with sensible defaults for every
// tunable option.
func NewDefaultConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			Output:      "table",
			Concurrency: 10,
			Proxy:       "",
			UserAgent:   "",
			Defang:      false,
			NoDefang:    false,
		},
		Dns: DnsConfig{
			Servers:         nil,
			Confirmations:   2,
			MaxAttempts:     0,
			RetryCount:      3,
			RetryFactor:     2,
			RetryMinTimeout: 1000 * time.Millisecond,
			RetryMaxTimeout: 16000 * time.Millisecond,
		},
		Whois: WhoisConfig{
			Timeout:                   5000 * time.Millisecond,
			RetryCount:                3,
			RetryFactor:               2,
			RetryMinTimeout:           1000 * time.Millisecond,
			RetryMaxTimeout:           16000 * time.Millisecond,
			Family:                    0,
			Follow:                    0,
			CustomWhoisServersMapping: nil,
			WhoisErrorCountAsAlive:    true,
		},
	}
}
