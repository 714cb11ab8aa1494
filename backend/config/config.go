package config

import (
	"time"

	"github.com/raidledger/raidledger/tracker"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *tracker.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *tracker.Config, debug bool) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
	}
}

// GetWebConfig returns the web configuration
func (w *WebAppConfig) GetWebConfig() tracker.WebConfig {
	return w.Config.Web
}

// SessionTTL returns how long a session cookie stays valid
func (w *WebAppConfig) SessionTTL() time.Duration {
	if ttl := w.Config.Web.SessionTTL.Std(); ttl > 0 {
		return ttl
	}
	return 24 * time.Hour
}

// SecureCookies reports whether cookies carry the Secure flag
func (w *WebAppConfig) SecureCookies() bool {
	return w.Config.Web.SecureCookie || w.Environment == "production"
}
