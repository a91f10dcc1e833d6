package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Output
	OutputFormat     string `mapstructure:"output_format" yaml:"output_format"`
	OutputDir        string `mapstructure:"output_dir" yaml:"output_dir"`
	PreviewRows      int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	ReportDateLayout string `mapstructure:"report_date_layout" yaml:"report_date_layout"`
	BatchWorkers     int    `mapstructure:"batch_workers" yaml:"batch_workers"`

	// HTTP server
	ServerAddr         string   `mapstructure:"server_addr" yaml:"server_addr"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" yaml:"cors_allowed_origins"`
	MaxUploadMB        int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	ReadTimeoutSec     int      `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		OutputFormat:       "text",
		PreviewRows:        5,
		ReportDateLayout:   "1/2/2006",
		BatchWorkers:       4,
		ServerAddr:         ":8001",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadMB:        10,
		ReadTimeoutSec:     30,
	}
}

// Path resolves the config file location: cfgFile when set, otherwise
// ~/.datasight/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datasight", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datasight/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command-line flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATASIGHT")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("report_date_layout", d.ReportDateLayout)
	v.SetDefault("batch_workers", d.BatchWorkers)
	v.SetDefault("server_addr", d.ServerAddr)
	v.SetDefault("cors_allowed_origins", d.CORSAllowedOrigins)
	v.SetDefault("max_upload_mb", d.MaxUploadMB)
	v.SetDefault("read_timeout_sec", d.ReadTimeoutSec)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".datasight"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the commands cannot work with.
func (c *Global) Validate() error {
	switch c.OutputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output_format: %q (use text, json or yaml)", c.OutputFormat)
	}
	if c.PreviewRows <= 0 {
		return fmt.Errorf("invalid preview_rows: %d", c.PreviewRows)
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("invalid batch_workers: %d", c.BatchWorkers)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max_upload_mb: %d", c.MaxUploadMB)
	}
	return nil
}
