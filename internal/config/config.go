package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Ingest schemas observed in the wild. The normalizer is configured with
// exactly one of them per deployment; payloads are never auto-detected.
const (
	SchemaJustJoin = "justjoin" // title/companyName/experienceLevel/requiredSkills
	SchemaAPI      = "api"      // role/company/seniority/skills-as-object
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
		RateLimit    int           `yaml:"rate_limit" default:"120"` // ingest requests per minute per client
		RateBurst    int           `yaml:"rate_burst" default:"10"`
	} `yaml:"server"`

	Ingest struct {
		Schema              string `yaml:"schema" default:"justjoin"`
		MaxBatchBytes       int64  `yaml:"max_batch_bytes" default:"4194304"`
		MaxRejectionReasons int    `yaml:"max_rejection_reasons" default:"5"`
	} `yaml:"ingest"`

	Analytics struct {
		TopSkills      int    `yaml:"top_skills" default:"20"`
		MatrixSkills   int    `yaml:"matrix_skills" default:"15"`
		LocationSkills int    `yaml:"location_skills" default:"5"`
		Granularity    string `yaml:"granularity" default:"month"`
	} `yaml:"analytics"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
		CacheTTL time.Duration `yaml:"cache_ttl" default:"5m"`
		Enabled  bool          `yaml:"enabled" default:"false"`
	} `yaml:"redis"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.RateLimit = 120
	config.Server.RateBurst = 10

	config.Ingest.Schema = SchemaJustJoin
	config.Ingest.MaxBatchBytes = 4 * 1024 * 1024
	config.Ingest.MaxRejectionReasons = 5

	config.Analytics.TopSkills = 20
	config.Analytics.MatrixSkills = 15
	config.Analytics.LocationSkills = 5
	config.Analytics.Granularity = "month"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second
	config.Redis.CacheTTL = 5 * time.Minute
	config.Redis.Enabled = false

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if rateLimit := os.Getenv("RATE_LIMIT"); rateLimit != "" {
		if limit, err := strconv.Atoi(rateLimit); err == nil {
			c.Server.RateLimit = limit
		}
	}

	if schema := os.Getenv("INGEST_SCHEMA"); schema != "" {
		c.Ingest.Schema = schema
	}

	if topSkills := os.Getenv("ANALYTICS_TOP_SKILLS"); topSkills != "" {
		if n, err := strconv.Atoi(topSkills); err == nil {
			c.Analytics.TopSkills = n
		}
	}

	if granularity := os.Getenv("ANALYTICS_GRANULARITY"); granularity != "" {
		c.Analytics.Granularity = granularity
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if cacheTTL := os.Getenv("REDIS_CACHE_TTL"); cacheTTL != "" {
		if ttl, err := time.ParseDuration(cacheTTL); err == nil {
			c.Redis.CacheTTL = ttl
		}
	}

	if cacheEnabled := os.Getenv("REDIS_CACHE_ENABLED"); cacheEnabled != "" {
		c.Redis.Enabled = cacheEnabled == "true" || cacheEnabled == "1"
	}
}

// validate rejects configuration values the rest of the system cannot work with
func (c *Config) validate() error {
	if c.Ingest.Schema != SchemaJustJoin && c.Ingest.Schema != SchemaAPI {
		return fmt.Errorf("unknown ingest schema %q (expected %q or %q)", c.Ingest.Schema, SchemaJustJoin, SchemaAPI)
	}
	if c.Analytics.TopSkills <= 0 || c.Analytics.MatrixSkills <= 0 || c.Analytics.LocationSkills <= 0 {
		return fmt.Errorf("analytics top-N values must be positive")
	}
	return nil
}
