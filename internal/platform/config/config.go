package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAllowedMIMETypes and DefaultAllowedExtensions mirror the
// ingestion allow-list the backend accepts. A file passes validation
// when either its MIME type or its extension is listed.
var DefaultAllowedMIMETypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
	"text/html",
	"application/xml",
	"application/xlsx",
	"application/xls",
	"application/json",
	"video/mp3",
	"image/jpeg",
	"image/png",
	"text/plain",
	"text/markdown",
	"text/csv",
	"application/x-zip-compressed",
	"application/zip",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

var DefaultAllowedExtensions = []string{
	".pdf", ".doc", ".docx", ".html", ".xml", ".xlsx", ".xls", ".json",
	".png", ".ppt", ".pptx", ".mp3", ".txt", ".md", ".csv", ".zip",
	".img", ".jpeg",
}

const (
	UploadModePolled = "polled"
	UploadModeSync   = "sync"
)

// Duration parses YAML scalars like "500ms" or "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type UploadConfig struct {
	// Mode selects the backend contract: "polled" submits to the job
	// endpoint and tracks status until done, "sync" uses the
	// fire-and-forget endpoint and completes on transport success.
	Mode              string   `yaml:"mode"`
	PollInterval      Duration `yaml:"poll_interval"`
	JobTimeout        Duration `yaml:"job_timeout"`
	AllowedMIMETypes  []string `yaml:"allowed_mime_types"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type Config struct {
	APIBaseURL   string       `yaml:"api_base_url"`
	SocketURL    string       `yaml:"socket_url"`
	AuthToken    string       `yaml:"auth_token"`
	Upload       UploadConfig `yaml:"upload"`
	ConnectorDir string       `yaml:"connector_dir"`
	CacheDBPath  string       `yaml:"cache_db_path"`
	HTTPTimeout  Duration     `yaml:"http_timeout"`
}

// DefaultPath returns ~/.dochub/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dochub", "config.yaml"), nil
}

// Load reads the YAML config at path and fills in defaults for every
// omitted field. A missing file is not an error: offline commands work
// on defaults, and networked ones fail later with a clear message
// because api_base_url stays empty.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config path is required")
	}
	cfg := Config{}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg.applyDefaults(filepath.Dir(path))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults(dir string) {
	if c.Upload.Mode == "" {
		c.Upload.Mode = UploadModePolled
	}
	if c.Upload.PollInterval <= 0 {
		c.Upload.PollInterval = Duration(2 * time.Second)
	}
	if c.Upload.JobTimeout <= 0 {
		c.Upload.JobTimeout = Duration(15 * time.Minute)
	}
	if len(c.Upload.AllowedMIMETypes) == 0 {
		c.Upload.AllowedMIMETypes = append([]string(nil), DefaultAllowedMIMETypes...)
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		c.Upload.AllowedExtensions = append([]string(nil), DefaultAllowedExtensions...)
	}
	if c.ConnectorDir == "" {
		c.ConnectorDir = filepath.Join(dir, "connectors")
	}
	if c.CacheDBPath == "" {
		c.CacheDBPath = filepath.Join(dir, "cache.db")
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = Duration(30 * time.Second)
	}
}

func (c Config) validate() error {
	switch c.Upload.Mode {
	case UploadModePolled, UploadModeSync:
	default:
		return fmt.Errorf("unsupported upload mode %q", c.Upload.Mode)
	}
	return nil
}
