package config

import "fmt"

// AppConfig is the root of the YAML server configuration.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Database       DatabaseConfig `yaml:"database"`
	Paths          PathsConfig    `yaml:"paths"`
}

// DatabaseConfig selects and configures the storage backend.
// Driver is "mysql" or "sqlite"; Path is only used by sqlite.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Params   string `yaml:"params"`
	Path     string `yaml:"path"`
}

// PathsConfig holds filesystem locations used at runtime.
type PathsConfig struct {
	Uploads string `yaml:"uploads"`
}

func (c *AppConfig) IsDev() bool { return c.Env == "development" }

// DSN builds the MySQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.Params)
}
