package config

import "time"

// Messenger definition messenger_client YAML structure
type Messenger struct {
	API      APIConfig      `mapstructure:"api"`
	Live     LiveConfig     `mapstructure:"live"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Composer ComposerConfig `mapstructure:"composer"`
}

// APIConfig definition external message API setting
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LiveConfig definition live channel setting
type LiveConfig struct {
	URL                  string        `mapstructure:"url"`
	InitialRetryInterval time.Duration `mapstructure:"initial_retry_interval"`
	MaxRetryInterval     time.Duration `mapstructure:"max_retry_interval"`
	PingPeriod           time.Duration `mapstructure:"ping_period"`
}

// FeedConfig definition message feed setting
type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// ComposerConfig definition outbound composer setting
type ComposerConfig struct {
	EchoWait time.Duration `mapstructure:"echo_wait"`
}
