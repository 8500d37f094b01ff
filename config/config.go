package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const defaultDecodeTimeout = 5 * time.Second

// Config holds the CLI defaults read from preflight.yaml. Flags given
// on the command line override whatever is set here.
type Config struct {
	Workers       int    `yaml:"workers"`
	MinScore      int    `yaml:"min_score"`
	DecodeTimeout string `yaml:"decode_timeout"`
	ReportPath    string `yaml:"report"`
	JSONPath      string `yaml:"json"`
	LogFormat     string `yaml:"log_format"`
}

func Default() Config {
	return Config{
		DecodeTimeout: defaultDecodeTimeout.String(),
		LogFormat:     "text",
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		return cfg, fmt.Errorf("min_score %d outside [0, 100]", cfg.MinScore)
	}
	return cfg, nil
}

// Timeout parses the decode timeout, falling back to the default when
// the field is empty or malformed.
func (c Config) Timeout() time.Duration {
	if c.DecodeTimeout == "" {
		return defaultDecodeTimeout
	}
	d, err := time.ParseDuration(c.DecodeTimeout)
	if err != nil || d < 0 {
		return defaultDecodeTimeout
	}
	return d
}
