// Package config loads zipcensus settings from config.yaml and ZIPCENSUS_*
// environment variables.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Census     CensusConfig     `yaml:"census" mapstructure:"census"`
	Zippopotam ZippopotamConfig `yaml:"zippopotam" mapstructure:"zippopotam"`
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// CensusConfig configures the Census data API.
type CensusConfig struct {
	APIKey     string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL    string  `yaml:"base_url" mapstructure:"base_url"`
	Year       int     `yaml:"year" mapstructure:"year"`
	Dataset    string  `yaml:"dataset" mapstructure:"dataset"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ZippopotamConfig configures the ZIP-to-state lookup service.
type ZippopotamConfig struct {
	BaseURL    string  `yaml:"base_url" mapstructure:"base_url"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	CheckpointEvery int `yaml:"checkpoint_every" mapstructure:"checkpoint_every"`
}

// OutputConfig locates the persisted artifacts.
type OutputConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	LedgerFile   string `yaml:"ledger_file" mapstructure:"ledger_file"`
	ResultsFile  string `yaml:"results_file" mapstructure:"results_file"`
	FailuresFile string `yaml:"failures_file" mapstructure:"failures_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ZIPCENSUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("census.api_key", "")
	v.SetDefault("census.base_url", "https://api.census.gov")
	v.SetDefault("census.year", 2019)
	v.SetDefault("census.dataset", "acs/acs5")
	v.SetDefault("census.rate_per_sec", 10)
	v.SetDefault("zippopotam.base_url", "http://api.zippopotam.us")
	v.SetDefault("zippopotam.rate_per_sec", 5)
	v.SetDefault("http.timeout_secs", 30)
	v.SetDefault("http.user_agent", "zipcensus/1.0")
	v.SetDefault("batch.checkpoint_every", 5)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.ledger_file", "proc_post.csv")
	v.SetDefault("output.results_file", "census_df.csv")
	v.SetDefault("output.failures_file", "census_failures.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks settings that would make a run misbehave. The census API
// key is deliberately not checked; the API reports a bad key itself.
func (c *Config) Validate() error {
	var problems []string
	if c.Batch.CheckpointEvery < 1 {
		problems = append(problems, "batch.checkpoint_every must be at least 1")
	}
	if c.Census.Year < 2009 {
		problems = append(problems, "census.year must be 2009 or later")
	}
	if c.Census.BaseURL == "" {
		problems = append(problems, "census.base_url is required")
	}
	if c.Zippopotam.BaseURL == "" {
		problems = append(problems, "zippopotam.base_url is required")
	}
	if c.Census.RatePerSec <= 0 || c.Zippopotam.RatePerSec <= 0 {
		problems = append(problems, "rate_per_sec must be positive")
	}
	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
