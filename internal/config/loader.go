package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetDefaultConfigPath returns the OS-appropriate default config file path.
// Accepts userConfigDir for dependency injection (testability).
// Ensures the app-specific config directory exists.
func GetDefaultConfigPath(userConfigDir func() (string, error)) (string, error) {
	// Get OS-appropriate config directory
	// - Windows: %AppData%
	// - macOS: $HOME/Library/Application Support
	// - Linux: $XDG_CONFIG_HOME or $HOME/.config
	configDir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	appConfigDir := filepath.Join(configDir, "livenesscheck")

	if err := os.MkdirAll(appConfigDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(appConfigDir, "config.yaml"), nil
}

// Load loads the configuration from the specified path or default location.
// If configPath is empty, it uses the OS-appropriate default path.
// If the config file doesn't exist, it returns a default configuration.
// Accepts userConfigDir for dependency injection (testability).
func Load(configPath string, userConfigDir func() (string, error)) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = GetDefaultConfigPath(userConfigDir)
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures Viper default values matching NewDefaultConfig.
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("global.output", d.Global.Output)
	v.SetDefault("global.concurrency", d.Global.Concurrency)
	v.SetDefault("global.proxy", d.Global.Proxy)
	v.SetDefault("global.user_agent", d.Global.UserAgent)
	v.SetDefault("global.defang", d.Global.Defang)
	v.SetDefault("global.no_defang", d.Global.NoDefang)

	v.SetDefault("dns.servers", d.Dns.Servers)
	v.SetDefault("dns.confirmations", d.Dns.Confirmations)
	v.SetDefault("dns.max_attempts", d.Dns.MaxAttempts)
	v.SetDefault("dns.retry_count", d.Dns.RetryCount)
	v.SetDefault("dns.retry_factor", d.Dns.RetryFactor)
	v.SetDefault("dns.retry_min_timeout", d.Dns.RetryMinTimeout)
	v.SetDefault("dns.retry_max_timeout", d.Dns.RetryMaxTimeout)

	v.SetDefault("whois.timeout", d.Whois.Timeout)
	v.SetDefault("whois.retry_count", d.Whois.RetryCount)
	v.SetDefault("whois.retry_factor", d.Whois.RetryFactor)
	v.SetDefault("whois.retry_min_timeout", d.Whois.RetryMinTimeout)
	v.SetDefault("whois.retry_max_timeout", d.Whois.RetryMaxTimeout)
	v.SetDefault("whois.family", d.Whois.Family)
	v.SetDefault("whois.follow", d.Whois.Follow)
	v.SetDefault("whois.custom_whois_servers_mapping", d.Whois.CustomWhoisServersMapping)
	v.SetDefault("whois.whois_error_count_as_alive", d.Whois.WhoisErrorCountAsAlive)
}
