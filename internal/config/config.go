package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "https://www.novelhall.com/"
	DefaultLanguage     = "en"
	DefaultMaxBodyBytes = 10 << 20
)

type Selectors struct {
	BookTitle    string `yaml:"book_title"`
	ChapterTitle string `yaml:"chapter_title"`
	Content      string `yaml:"content"`
	SkipClass    string `yaml:"skip_class"`
}

type Config struct {
	Output   string `yaml:"output"`
	Debug    bool   `yaml:"debug"`
	Progress bool   `yaml:"progress"`

	DefaultURL string    `yaml:"default_url"`
	BaseURL    string    `yaml:"base_url"`
	Selectors  Selectors `yaml:"selectors"`
	MaxPages   int       `yaml:"max_pages"`
	Language   string    `yaml:"language"`

	Timeout          time.Duration `yaml:"timeout"`
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`
	Cookie           string        `yaml:"cookie"`
	CookieFile       string        `yaml:"cookie_file"`
	UserAgent        string        `yaml:"user_agent"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass"`

	ReadabilityFallback bool   `yaml:"readability_fallback"`
	RespectRobots       bool   `yaml:"respect_robots"`
	LogFile             string `yaml:"log_file"`
}

// Options carries CLI flags. Zero values leave the loaded config untouched,
// except BaseURL which applies whenever BaseURLSet is true so that an empty
// flag can turn prefixing off.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	NoProgress       bool
	Output           string
	URL              string
	BaseURL          string
	BaseURLSet       bool
	MaxPages         int
	Language         string
	Timeout          time.Duration
	Cookie           string
	CookieFile       string
	UserAgent        string
	CloudflareBypass bool

	ReadabilityFallback bool
	RespectRobots       bool
	LogFile             string
}

func DefaultConfig() *Config {
	return &Config{
		Output:   ".",
		Progress: true,
		BaseURL:  DefaultBaseURL,
		Selectors: Selectors{
			BookTitle:    "#bookname",
			ChapterTitle: "h1",
			Content:      "#htmlContent",
			SkipClass:    "none",
		},
		Language:     DefaultLanguage,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadYAML reads path over the defaults, so keys missing from the file keep
// their default value.
func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `noveld config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.NoProgress {
		c.Progress = false
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.URL != "" {
		c.DefaultURL = o.URL
	}
	if o.BaseURLSet {
		c.BaseURL = o.BaseURL
	}
	if o.MaxPages != 0 {
		c.MaxPages = o.MaxPages
	}
	if o.Language != "" {
		c.Language = o.Language
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.ReadabilityFallback {
		c.ReadabilityFallback = true
	}
	if o.RespectRobots {
		c.RespectRobots = true
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

func (c *Config) Validate() error {
	if c.MaxPages < 0 {
		return fmt.Errorf("max_pages must not be negative, got %d", c.MaxPages)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}

func (c *Config) Print() {
	fmt.Printf(" -output: %s\n", c.Output)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if !c.Progress {
		fmt.Printf(" -progress: %t\n", c.Progress)
	}
	if c.DefaultURL != "" {
		fmt.Printf(" -url: %s\n", c.DefaultURL)
	}
	if c.BaseURL != "" {
		fmt.Printf(" -base_url: %s\n", c.BaseURL)
	} else {
		fmt.Println(" -base_url: (none)")
	}
	fmt.Printf(" -selectors: book=%q chapter=%q content=%q skip=%q\n",
		c.Selectors.BookTitle, c.Selectors.ChapterTitle, c.Selectors.Content, c.Selectors.SkipClass)
	if c.MaxPages > 0 {
		fmt.Printf(" -max_pages: %d\n", c.MaxPages)
	}
	fmt.Printf(" -language: %s\n", c.Language)
	if c.Timeout > 0 {
		fmt.Printf(" -timeout: %s\n", c.Timeout)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.ReadabilityFallback {
		fmt.Printf(" -readability_fallback: %t\n", c.ReadabilityFallback)
	}
	if c.RespectRobots {
		fmt.Printf(" -respect_robots: %t\n", c.RespectRobots)
	}
	if c.LogFile != "" {
		fmt.Printf(" -log_file: %s\n", c.LogFile)
	}
}
