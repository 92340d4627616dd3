package config

import (
	"fmt"
	"path/filepath"
)

// DefaultAllowedUploads are the glob patterns accepted for image uploads.
var DefaultAllowedUploads = []string{
	"*.png",
	"*.jpg",
	"*.jpeg",
	"*.gif",
	"*.webp",
	"*.svg",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:           8090,
		DataDir:        "data",
		MaxUploadMB:    10,
		AllowedUploads: DefaultAllowedUploads,
		SessionCookie:  "reportdeck_session",
	}
}

// ResolvedAssetsDir returns the configured assets directory, defaulting to
// <data_dir>/assets when unset.
func (c *Config) ResolvedAssetsDir() string {
	if c.AssetsDir != "" {
		return c.AssetsDir
	}
	return filepath.Join(c.DataDir, "assets")
}

// ResolvedBaseURL returns the configured public base URL, defaulting to a
// localhost URL on the configured port.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
