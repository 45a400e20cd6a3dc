// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/TFMV/nlmunicipality/internal/history"
	"github.com/TFMV/nlmunicipality/internal/index"
	"github.com/TFMV/nlmunicipality/internal/matcher"
	"github.com/TFMV/nlmunicipality/internal/standardizer"
)

// DBCreds are the Postgres connection settings.
type DBCreds struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	URL      string `yaml:"url"`
}

// Engine holds the matcher parameters.
type Engine struct {
	Threshold      int     `yaml:"threshold"`
	RatioThreshold float64 `yaml:"ratio_threshold"`
	ReferenceYear  int     `yaml:"reference_year"`
	Scorer         string  `yaml:"scorer"`
	Workers        int     `yaml:"workers"`
}

// Normalizer holds the word lists applied to raw input.
type Normalizer struct {
	Ignore     []string            `yaml:"ignore"`
	Remove     []string            `yaml:"remove"`
	Recode     map[string]string   `yaml:"recode"`
	Replace    map[string]string   `yaml:"replace"`
	Delimiters []string            `yaml:"delimiters"`
	Rules      []standardizer.Rule `yaml:"rules"`
}

// Data selects where the reference tables come from.
type Data struct {
	Source string `yaml:"source"` // csv | postgres
	Dir    string `yaml:"dir"`
}

// Redis configures the shared result cache.
type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// Cache selects the result cache backend.
type Cache struct {
	Backend string `yaml:"backend"` // memory | redis | none
	Redis   Redis  `yaml:"redis"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	DBCreds    DBCreds    `yaml:"db_creds"`
	Engine     Engine     `yaml:"engine"`
	Normalizer Normalizer `yaml:"normalizer"`
	Data       Data       `yaml:"data"`
	Cache      Cache      `yaml:"cache"`
	Server     Server     `yaml:"server"`
}

// Default returns a complete configuration that reads CSV tables from ./data
// and caches in memory.
func Default() *Config {
	std := standardizer.DefaultConfig()
	recode := make(map[string]string, len(index.DefaultRecode))
	for k, v := range index.DefaultRecode {
		recode[k] = v
	}
	return &Config{
		DBCreds: DBCreds{
			Host:     "localhost",
			Port:     "5432",
			Database: "nlmunicipality",
		},
		Engine: Engine{
			Threshold:      matcher.DefaultThreshold,
			RatioThreshold: history.DefaultRatioThreshold,
			ReferenceYear:  time.Now().Year(),
			Scorer:         "token_sort",
		},
		Normalizer: Normalizer{
			Ignore:     std.Ignore,
			Remove:     std.Remove,
			Recode:     recode,
			Replace:    std.Replace,
			Delimiters: std.Delimiters,
			Rules:      std.Rules,
		},
		Data:   Data{Source: "csv", Dir: "data"},
		Cache:  Cache{Backend: "memory", Redis: Redis{Prefix: "nlm:"}},
		Server: Server{Addr: ":8080"},
	}
}

// LoadConfig loads the configuration from a YAML file on top of Default.
// Keys missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file %s: %w", configPath, err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// LoadEnv reads a .env file, if present, into the process environment.
// Variables that are already set win.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("unable to load env file %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from DATABASE_URL, REDIS_ADDR, REDIS_PASSWORD,
// NLM_DATA_DIR, NLM_DATA_SOURCE, NLM_LISTEN_ADDR and NLM_THRESHOLD.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DBCreds.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Backend = "redis"
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("NLM_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("NLM_DATA_SOURCE"); v != "" {
		c.Data.Source = strings.ToLower(v)
	}
	if v := os.Getenv("NLM_LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("NLM_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.Threshold = n
		}
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case "csv", "postgres":
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Engine.Threshold < 0 || c.Engine.Threshold > 100 {
		return fmt.Errorf("threshold %d out of range 0..100", c.Engine.Threshold)
	}
	return nil
}

// ConnString returns the Postgres connection string: URL if set, otherwise
// one built from the individual fields.
func (d DBCreds) ConnString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", d.Username, d.Password, d.Host, d.Port, d.Database)
}

// EngineConfig translates the configuration for matcher.NewEngine.
func (c *Config) EngineConfig() matcher.Config {
	return matcher.Config{
		Threshold:      c.Engine.Threshold,
		RatioThreshold: c.Engine.RatioThreshold,
		ReferenceYear:  c.Engine.ReferenceYear,
		Scorer:         c.Engine.Scorer,
		Recode:         c.Normalizer.Recode,
		Standardizer: standardizer.Config{
			Ignore:     c.Normalizer.Ignore,
			Remove:     c.Normalizer.Remove,
			Replace:    c.Normalizer.Replace,
			Delimiters: c.Normalizer.Delimiters,
			Rules:      c.Normalizer.Rules,
		},
	}
}
