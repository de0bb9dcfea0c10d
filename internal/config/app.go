package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"neuradigest/internal/domain/entity"
	pkgconfig "neuradigest/pkg/config"
)

// AppConfig represents the application configuration loaded from YAML.
// Every field has a default so the file is optional.
type AppConfig struct {
	Feeds []entity.FeedSource `yaml:"feeds"`

	// Keywords filter fetched items by title and snippet.
	Keywords []string `yaml:"keywords"`

	// JunkPatterns override the built-in email junk-pattern list when set.
	JunkPatterns []string `yaml:"junk_patterns"`

	Digest DigestConfig `yaml:"digest"`
}

// DigestConfig bounds how the digest is assembled.
type DigestConfig struct {
	PerFeedTimeout time.Duration
	MaxPerSource   int
	MaxTotal       int
	CacheTTL       time.Duration
}

// UnmarshalYAML decodes durations from human-readable strings ("10s", "24h").
// yaml.v3 has no native time.Duration support.
func (d *DigestConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		PerFeedTimeout string `yaml:"per_feed_timeout"`
		MaxPerSource   int    `yaml:"max_per_source"`
		MaxTotal       int    `yaml:"max_total"`
		CacheTTL       string `yaml:"cache_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	d.MaxPerSource = raw.MaxPerSource
	d.MaxTotal = raw.MaxTotal

	var err error
	if d.PerFeedTimeout, err = parseOptionalDuration(raw.PerFeedTimeout); err != nil {
		return fmt.Errorf("per_feed_timeout: %w", err)
	}
	if d.CacheTTL, err = parseOptionalDuration(raw.CacheTTL); err != nil {
		return fmt.Errorf("cache_ttl: %w", err)
	}
	return nil
}

func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// defaultFeeds lists the trusted AI/tech/business sources used when no
// config file overrides them.
var defaultFeeds = []entity.FeedSource{
	{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Category: "Tech Giants"},
	{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Category: "Tech Giants"},
	{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index", Category: "Tech Giants"},
	{Name: "MIT Technology Review", URL: "https://www.technologyreview.com/feed/", Category: "AI Research"},
	{Name: "VentureBeat AI", URL: "https://venturebeat.com/ai/feed/", Category: "AI News"},
	{Name: "Reuters Technology", URL: "https://www.reutersagency.com/feed/?taxonomy=best-topics&post_type=best", Category: "Business Deals"},
}

// defaultKeywords filter the digest down to AI, tech and business news.
var defaultKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "deep learning",
	"openai", "google", "microsoft", "apple", "meta", "amazon", "nvidia",
	"chatgpt", "gpt", "llm", "model", "launch", "release",
	"acquisition", "merger", "deal", "investment", "funding",
	"startup", "tech", "technology", "innovation",
	"sam altman", "elon musk", "sundar pichai", "satya nadella",
}

// LoadAppConfig loads the application configuration. When path is empty the
// APP_CONFIG_PATH environment variable is consulted; when neither names a
// file, built-in defaults are used.
//
// The RELEVANT_KEYWORDS environment variable (comma-separated) overrides the
// keyword list from both the file and the defaults.
func LoadAppConfig(path string) (*AppConfig, error) {
	if path == "" {
		path = os.Getenv("APP_CONFIG_PATH")
	}

	cfg := &AppConfig{}
	if path != "" {
		// #nosec G304 -- path is provided by trusted source (CLI arg or env), not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()

	if env := pkgconfig.GetEnvString("RELEVANT_KEYWORDS", ""); env != "" {
		cfg.Keywords = splitKeywords(env)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if len(c.Feeds) == 0 {
		c.Feeds = defaultFeeds
	}
	if len(c.Keywords) == 0 {
		c.Keywords = defaultKeywords
	}
	if c.Digest.PerFeedTimeout <= 0 {
		c.Digest.PerFeedTimeout = 10 * time.Second
	}
	if c.Digest.MaxPerSource <= 0 {
		c.Digest.MaxPerSource = 5
	}
	if c.Digest.MaxTotal <= 0 {
		c.Digest.MaxTotal = 30
	}
	if c.Digest.CacheTTL <= 0 {
		c.Digest.CacheTTL = 24 * time.Hour
	}
}

func (c *AppConfig) validate() error {
	for i, feed := range c.Feeds {
		if feed.Name == "" {
			return fmt.Errorf("feed %d: name is required", i)
		}
		if !strings.HasPrefix(feed.URL, "http://") && !strings.HasPrefix(feed.URL, "https://") {
			return fmt.Errorf("feed %q: url must be http or https", feed.Name)
		}
	}
	return nil
}

// Validator returns an email validator using the configured junk patterns,
// or the built-in list when none are configured.
func (c *AppConfig) Validator() *entity.EmailValidator {
	if len(c.JunkPatterns) == 0 {
		return entity.NewEmailValidator()
	}
	return entity.NewEmailValidatorWithPatterns(c.JunkPatterns)
}

func splitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
