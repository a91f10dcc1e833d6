package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/datasight-cli/internal/api"
	"github.com/KaramelBytes/datasight-cli/internal/state"
	"github.com/spf13/cobra"
)

var srvAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset analyzer over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		addr := srvAddr
		if addr == "" {
			addr = c.ServerAddr
		}
		h := api.NewHandler(state.NewStore(), newReporter(), int64(c.MaxUploadMB)<<20, c.PreviewRows)
		router := api.NewRouter(h, c.CORSAllowedOrigins)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		debugf("cors origins: %v, max upload: %d MB", c.CORSAllowedOrigins, c.MaxUploadMB)
		return api.Serve(ctx, addr, router, time.Duration(c.ReadTimeoutSec)*time.Second)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (default from config)")
}
