package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort     string `yaml:"server_port"`
	MaxFileSize    int64  `yaml:"max_file_size"`
	OutputDir      string `yaml:"output_dir"`
	NamingScheme   string `yaml:"naming_scheme"`
	OrganizeByDate bool   `yaml:"organize_by_date"`
	Workers        int    `yaml:"workers"`
}

func defaults() *Config {
	return &Config{
		ServerPort:   "8080",
		MaxFileSize:  32 * 1024 * 1024, // 32 MB
		OutputDir:    "./organized",
		NamingScheme: "invoice_number",
		Workers:      4,
	}
}

// LoadConfig layers defaults, the optional YAML file named by INVFROG_CONFIG,
// and environment variables, later sources winning.
func LoadConfig() *Config {
	return LoadConfigFile(os.Getenv("INVFROG_CONFIG"))
}

// LoadConfigFile is LoadConfig with an explicit file path. An empty path skips
// the file layer; an unreadable or malformed file is logged and skipped.
func LoadConfigFile(path string) *Config {
	cfg := defaults()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			log.Printf("Config file %s not loaded: %v", path, err)
		}
	}
	cfg.applyEnv()

	return cfg
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// applyEnv overrides individual fields from the environment. Values that fail
// to parse keep the current setting.
func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.ServerPort = v
	}
	if v := os.Getenv("INVFROG_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxFileSize = n
		}
	}
	if v := os.Getenv("INVFROG_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("INVFROG_SCHEME"); v != "" {
		c.NamingScheme = v
	}
	if v := os.Getenv("INVFROG_ORGANIZE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.OrganizeByDate = b
		}
	}
	if v := os.Getenv("INVFROG_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
}
