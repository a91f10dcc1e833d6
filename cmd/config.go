package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/datasight-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataSight configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.OutputDir != "" {
			fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		}
		fmt.Fprintf(out, "preview_rows: %d\n", c.PreviewRows)
		fmt.Fprintf(out, "report_date_layout: %s\n", c.ReportDateLayout)
		fmt.Fprintf(out, "batch_workers: %d\n", c.BatchWorkers)
		fmt.Fprintf(out, "server_addr: %s\n", c.ServerAddr)
		fmt.Fprintf(out, "cors_allowed_origins: %s\n", strings.Join(c.CORSAllowedOrigins, ","))
		fmt.Fprintf(out, "max_upload_mb: %d\n", c.MaxUploadMB)
		fmt.Fprintf(out, "read_timeout_sec: %d\n", c.ReadTimeoutSec)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "output_format":
			cfg.OutputFormat = strings.ToLower(val)
		case "output_dir":
			cfg.OutputDir = val
		case "preview_rows":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.PreviewRows = i
		case "report_date_layout":
			cfg.ReportDateLayout = val
		case "batch_workers":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.BatchWorkers = i
		case "server_addr":
			cfg.ServerAddr = val
		case "cors_allowed_origins":
			var origins []string
			for _, o := range strings.Split(val, ",") {
				if o = strings.TrimSpace(o); o != "" {
					origins = append(origins, o)
				}
			}
			cfg.CORSAllowedOrigins = origins
		case "max_upload_mb":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.MaxUploadMB = i
		case "read_timeout_sec":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.ReadTimeoutSec = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}
