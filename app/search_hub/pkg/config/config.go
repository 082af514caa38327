package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

// Config 项目配置结构体
type Config struct {
	Providers   ProvidersConfig   `yaml:"providers"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
	Cache       CacheConfig       `yaml:"cache"`
	Store       StoreConfig       `yaml:"store"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Preview     PreviewConfig     `yaml:"preview"`
	Trending    []string          `yaml:"trending"`
}

// ProvidersConfig 每个类别各自的 provider
type ProvidersConfig struct {
	Web   ProviderConfig `yaml:"web"`
	Image ProviderConfig `yaml:"image"`
	News  ProviderConfig `yaml:"news"`
}

// ProviderConfig 单个 provider 配置
// Name: googlecse / gsearch / imagesearch / gnews / searxng / tavily
type ProviderConfig struct {
	Name     string        `yaml:"name"`
	APIKey   string        `yaml:"api_key"`
	SearchID string        `yaml:"search_id"` // Google CSE cx
	Host     string        `yaml:"host"`      // RapidAPI host
	BaseURL  string        `yaml:"base_url"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultsConfig 首次使用时的偏好默认值
type DefaultsConfig struct {
	Region     string `yaml:"region"`
	SafeSearch *bool  `yaml:"safe_search"`
	PageSize   int    `yaml:"page_size"`
}

// Preferences 将配置中的默认值合并到内置默认偏好上
func (d DefaultsConfig) Preferences() model.Preferences {
	p := model.DefaultPreferences()
	if d.Region != "" {
		p.Region = strings.ToLower(strings.TrimSpace(d.Region))
	}
	if d.SafeSearch != nil {
		p.SafeSearch = *d.SafeSearch
	}
	if d.PageSize > 0 {
		p.PageSize = d.PageSize
	}
	return p
}

// CacheConfig 结果缓存配置
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// StoreConfig 本地持久化配置，driver: memory / sqlite / postgres
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 对上游 provider 的限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// PreviewConfig 结果预览抓取配置
type PreviewConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

const (
	DefaultCacheTTL       = 30 * time.Minute
	DefaultPreviewTimeout = 30 * time.Second
)

// Default 返回全部使用默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Providers.Web.Name == "" {
		c.Providers.Web.Name = "googlecse"
	}
	if c.Providers.Image.Name == "" {
		c.Providers.Image.Name = "imagesearch"
	}
	if c.Providers.News.Name == "" {
		c.Providers.News.Name = "gnews"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "sqlite"
	}
	if c.Store.Driver == "sqlite" && c.Store.DSN == "" {
		c.Store.DSN = "search_hub.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Preview.Timeout == 0 {
		c.Preview.Timeout = DefaultPreviewTimeout
	}
}

// envOverrides 环境变量覆盖密钥，避免写进配置文件
var envOverrides = []struct {
	env   string
	apply func(c *Config, v string)
}{
	{"SEARCH_HUB_GOOGLE_CSE_KEY", func(c *Config, v string) { setKey(c, "googlecse", v) }},
	{"SEARCH_HUB_GOOGLE_CSE_CX", func(c *Config, v string) {
		for _, p := range c.providers() {
			if p.Name == "googlecse" {
				p.SearchID = v
			}
		}
	}},
	{"SEARCH_HUB_RAPIDAPI_KEY", func(c *Config, v string) {
		setKey(c, "gsearch", v)
		setKey(c, "imagesearch", v)
	}},
	{"SEARCH_HUB_IMAGE_API_KEY", func(c *Config, v string) { forceKey(c, "imagesearch", v) }},
	{"SEARCH_HUB_IMAGE_API_HOST", func(c *Config, v string) {
		for _, p := range c.providers() {
			if p.Name == "imagesearch" {
				p.Host = v
			}
		}
	}},
	{"SEARCH_HUB_GNEWS_API_KEY", func(c *Config, v string) { forceKey(c, "gnews", v) }},
	{"SEARCH_HUB_TAVILY_API_KEY", func(c *Config, v string) { forceKey(c, "tavily", v) }},
}

// ApplyEnv 使用环境变量覆盖 provider 凭据
// 图片 provider 优先使用 SEARCH_HUB_IMAGE_API_KEY，缺省回退到 SEARCH_HUB_RAPIDAPI_KEY
func (c *Config) ApplyEnv() {
	for _, o := range envOverrides {
		if v := os.Getenv(o.env); v != "" {
			o.apply(c, v)
		}
	}
}

func (c *Config) providers() []*ProviderConfig {
	return []*ProviderConfig{&c.Providers.Web, &c.Providers.Image, &c.Providers.News}
}

// setKey 仅在未配置 key 时填充
func setKey(c *Config, name, key string) {
	for _, p := range c.providers() {
		if p.Name == name && p.APIKey == "" {
			p.APIKey = key
		}
	}
}

func forceKey(c *Config, name, key string) {
	for _, p := range c.providers() {
		if p.Name == name {
			p.APIKey = key
		}
	}
}

var knownProviders = map[string][]string{
	"web":   {"googlecse", "gsearch", "searxng", "tavily"},
	"image": {"imagesearch", "searxng"},
	"news":  {"gnews", "searxng", "tavily"},
}

// Validate 校验配置中的枚举值
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}

	check := func(category, name string) error {
		for _, n := range knownProviders[category] {
			if n == name {
				return nil
			}
		}
		return fmt.Errorf("provider %q cannot serve %s results", name, category)
	}
	if err := check("web", c.Providers.Web.Name); err != nil {
		return err
	}
	if err := check("image", c.Providers.Image.Name); err != nil {
		return err
	}
	if err := check("news", c.Providers.News.Name); err != nil {
		return err
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}
