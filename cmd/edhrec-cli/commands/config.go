package commands

import (
	"log/slog"
	"time"

	"edhrec-tracker/internal/chrono"
	"edhrec-tracker/internal/edhrec"
	"edhrec-tracker/internal/telemetry"
	"edhrec-tracker/lib/restyutil"
)

type Config struct {
	CommandersPath string `json:"commanders_path"`
	CardDataPath   string `json:"card_data_path"`
	CardImagesPath string `json:"card_images_path"`

	SiteOrigin string `json:"site_origin"`
	// PaceMs is the delay after every card page fetch of the resolver.
	PaceMs         int    `json:"pace_ms"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	UserAgent      string `json:"user_agent"`
	// CloudflareBypass makes requests look like they come from a browser.
	CloudflareBypass bool `json:"cloudflare_bypass"`

	Upsert     bool `json:"upsert"`
	Checkpoint bool `json:"checkpoint"`

	// HttpDumpDir receives a dump of every http exchange when running with --verbose.
	HttpDumpDir string `json:"http_dump_dir"`
	// Timezone is the IANA timezone run dates are stamped in, empty means local time.
	Timezone string `json:"timezone"`
}

func DefaultConfig() Config {
	return Config{
		CommandersPath: "Commanders.csv",
		CardDataPath:   "card_data.csv",
		CardImagesPath: "card_images.csv",
		SiteOrigin:     edhrec.DefaultOrigin,
		PaceMs:         100,
		TimeoutSeconds: 30,
	}
}

func (c Config) Pace() time.Duration {
	return time.Duration(c.PaceMs) * time.Millisecond
}

func newTelemetry() telemetry.API {
	return telemetry.NewSlogAPI(slog.Default())
}

func newClock() (chrono.API, error) {
	if cfg.Timezone == "" {
		return chrono.NewStandardImpl(nil), nil
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return chrono.NewStandardImpl(location), nil
}

func newClient(tel telemetry.API) *edhrec.Client {
	opts := edhrec.ClientOptions{
		UserAgent:        cfg.UserAgent,
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		CloudflareBypass: cfg.CloudflareBypass,
		Tel:              tel,
	}
	if cfg.HttpDumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.HttpDumpDir)
		if err != nil {
			slog.Warn("failed to create http dump directory", "dir", cfg.HttpDumpDir, "err", err)
		} else {
			opts.Dump = output
		}
	}
	return edhrec.NewClient(opts)
}
