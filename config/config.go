package config

import (
	"fmt"
	"os"
)

// Config holds everything the services need from the environment. It is
// loaded once in main and injected, so request paths never read ambient
// process state.
type Config struct {
	RazorpayKeyID     string
	RazorpayKeySecret string

	GhostAdminAPIURL string
	GhostAdminAPIKey string

	SiteName   string
	SiteImage  string
	SuccessURL string

	Port string
}

// Load reads configuration from environment variables. The Razorpay and
// Ghost credentials are required; display metadata falls back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		GhostAdminAPIURL:  os.Getenv("GHOST_ADMIN_API_URL"),
		GhostAdminAPIKey:  os.Getenv("GHOST_ADMIN_API_KEY"),
		SiteName:          os.Getenv("SITE_NAME"),
		SiteImage:         os.Getenv("SITE_IMAGE"),
		SuccessURL:        os.Getenv("SUCCESS_URL"),
		Port:              os.Getenv("PORT"),
	}

	required := []struct {
		envVar string
		value  string
	}{
		{"RAZORPAY_KEY_ID", cfg.RazorpayKeyID},
		{"RAZORPAY_KEY_SECRET", cfg.RazorpayKeySecret},
		{"GHOST_ADMIN_API_URL", cfg.GhostAdminAPIURL},
		{"GHOST_ADMIN_API_KEY", cfg.GhostAdminAPIKey},
	}
	for _, v := range required {
		if v.value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", v.envVar)
		}
	}

	if cfg.SiteName == "" {
		cfg.SiteName = "My Site"
	}
	if cfg.SiteImage == "" {
		cfg.SiteImage = "/assets/images/logo.png"
	}
	if cfg.SuccessURL == "" {
		cfg.SuccessURL = "/membership-success/"
	}
	if cfg.Port == "" {
		cfg.Port = "3333"
	}

	return cfg, nil
}
