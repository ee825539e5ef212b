// Command queryserver serves shortest-path queries over a NavGrid built
// by the generator: POST /path, GET /select, GET /metrics, GET /health.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"worldnav/internal/app"
)

var (
	addr        string
	navGridPath string
	enablePprof bool
)

var rootCmd = &cobra.Command{
	Use:   "queryserver",
	Short: "serve shortest-path queries over a NavGrid",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rootCmd.Flags().StringVar(&navGridPath, "navgrid", "navgrid.bin", "path to the NavGrid file (required)")
	rootCmd.Flags().BoolVar(&enablePprof, "enable-pprof-trace", false, "expose /debug/pprof/trace")
	rootCmd.MarkFlagRequired("navgrid")
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := app.Config{
		Addr:        addr,
		NavGridPath: navGridPath,
		EnablePprof: enablePprof,
	}
	return app.Run(ctx, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
