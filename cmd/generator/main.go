// Command generator runs the offline collision-to-navigation pass: it
// reads a game client cache, transforms its collision data into a NavGrid,
// applies connectivity groups and a custom-edges sidecar, and writes the
// result to disk.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	worldnav "worldnav"
	"worldnav/internal/config"
	"worldnav/internal/generator"
	"worldnav/internal/telemetry"
	"worldnav/logging"
	loggingSinks "worldnav/logging/sinks"
)

var (
	cachePath  string
	xteasPath  string
	outputPath string
	edgesPath  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "generator",
	Short: "build a NavGrid from a game client cache",
	Long: `generator walks a decoded game client cache, accumulates collision
flags per tile, transforms them into walkable-direction flags, computes
connectivity groups, merges a custom-edges sidecar, and writes the result
as a gzip+CBOR NavGrid file.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&cachePath, "cache", "", "path to the cache data directory (required)")
	rootCmd.Flags().StringVar(&xteasPath, "xteas", "", "path to the XTEA key file")
	rootCmd.Flags().StringVar(&outputPath, "output", "navgrid.bin", "output NavGrid file")
	rootCmd.Flags().StringVar(&edgesPath, "edges", "", "custom-edges YAML sidecar")
	rootCmd.Flags().StringVar(&configPath, "config", "", "generator id-override YAML config")
	rootCmd.MarkFlagRequired("cache")
}

func run(cmd *cobra.Command, args []string) error {
	stdlog := log.New(os.Stderr, "", log.LstdFlags)

	ctx := context.Background()
	logConfig := logging.DefaultConfig()
	sinks := map[string]logging.Sink{
		"console": loggingSinks.NewConsoleSink(os.Stderr, logging.ConsoleConfig{}),
	}
	router, err := logging.NewRouter(logConfig, logging.SystemClock{}, stdlog, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			stdlog.Printf("failed to close logging router: %v", cerr)
		}
	}()
	logger := telemetry.NewEventLogger(router, stdlog)

	genConfig, err := config.LoadGeneratorConfig(configPath)
	if err != nil {
		return err
	}

	source, err := generator.OpenCacheSource(cachePath, xteasPath)
	if err != nil {
		return err
	}

	locConfigs, err := source.LocationConfigs()
	if err != nil {
		return err
	}

	squares, err := source.MapSquares()
	if err != nil {
		return err
	}

	gen := generator.NewNavGenerator(genConfig)
	for _, sq := range squares {
		if err := gen.ProcessMapSquare(sq, locConfigs); err != nil {
			if corrupt, ok := err.(*worldnav.DataCorruptionError); ok {
				logger.Error("generator", "mapsquare.data_corruption", corrupt.Error(), nil)
			}
			return err
		}
		logger.Debug("generator", "mapsquare.processed", "processed map square", map[string]any{"i": sq.I(), "j": sq.J()})
	}
	logger.Info("generator", "generator.progress", "processed map squares", map[string]any{"count": len(squares)})

	gen.TransformFlags()

	grid := gen.Grid()
	if err := config.LoadCustomEdges(grid, edgesPath); err != nil {
		return err
	}
	generator.Finalize(grid)

	out, err := os.Create(outputPath)
	if err != nil {
		return &worldnav.ConfigError{Path: outputPath, Cause: err}
	}
	defer out.Close()

	if err := grid.WriteTo(out); err != nil {
		return &worldnav.ConfigError{Path: outputPath, Cause: err}
	}

	logger.Info("generator", "generator.complete", "wrote navgrid", map[string]any{
		"path": outputPath, "vertices": len(grid.Vertices), "edge_lists": len(grid.Edges), "teleports": len(grid.Teleports),
	})
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
