package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the server looks for its config when the
// -config flag is not given.
const DefaultConfigPath = "config.yaml"

// Load reads the YAML config file, applies defaults and normalizes values.
// A missing file yields the pure default configuration.
func Load(path string) (*AppConfig, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			normalize(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	normalize(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *AppConfig {
	return &AppConfig{
		Port: 3000,
		Env:  "production",
		Database: DatabaseConfig{
			Driver: "mysql",
			Host:   "127.0.0.1",
			Port:   3306,
			User:   "root",
			Name:   "pageforge",
			Params: "charset=utf8mb4&parseTime=True&loc=Local",
			Path:   "data/pageforge.db",
		},
		Paths: PathsConfig{
			Uploads: "public/uploads",
		},
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = "production"
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Port <= 0 {
		cfg.Port = 3000
	}
	if cfg.Database.Port <= 0 {
		cfg.Database.Port = 3306
	}
	if strings.TrimSpace(cfg.Paths.Uploads) == "" {
		cfg.Paths.Uploads = "public/uploads"
	}

	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins
}

func validate(cfg *AppConfig) error {
	switch cfg.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	return nil
}
