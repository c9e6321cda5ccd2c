package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/worldnews/internal/cache"
	"github.com/TobiSchelling/worldnews/internal/config"
	"github.com/TobiSchelling/worldnews/internal/feed"
	"github.com/TobiSchelling/worldnews/internal/news"
	"github.com/TobiSchelling/worldnews/internal/server"
	"github.com/TobiSchelling/worldnews/internal/sources"
	"github.com/TobiSchelling/worldnews/internal/stream"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "worldnews",
	Short:   "Regional news briefings from RSS feeds",
	Long:    "WorldNews ingests RSS feeds per region, merges overlapping coverage, and produces short extractive briefings.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
			return nil
		}
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	summarizeCmd.Flags().StringVar(&summarizeCountry, "country", "", "Narrow the briefing to one country")
	summarizeCmd.Flags().BoolVar(&summarizeStream, "stream", false, "Emit the briefing incrementally")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("worldnews", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to ~/.config/worldnews/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.ConfigDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
		if err := os.WriteFile(path, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List regions and their feed sources",
	Run: func(cmd *cobra.Command, args []string) {
		registry := sources.NewRegistry(cfg.SourceRegions())
		for _, id := range registry.IDs() {
			srcs, _ := registry.Lookup(id)
			fmt.Printf("%s (%s)\n", sources.Label(id), id)
			for _, s := range srcs {
				fmt.Printf("  [%s] %s  %s\n", s.Logo, s.Name, s.URL)
			}
		}
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <region>",
	Short: "Fetch and deduplicate a region's articles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := buildService()
		articles, err := service.RegionArticles(context.Background(), args[0])
		if err != nil {
			return err
		}

		for _, a := range articles {
			covered := ""
			if a.CoveredBy > 1 {
				covered = fmt.Sprintf(" (covered by %d sources)", a.CoveredBy)
			}
			fmt.Printf("%s  [%s] %s%s\n", a.PublishedAt.Format("2006-01-02 15:04"), a.Source, a.Title, covered)
		}
		fmt.Printf("\n%d articles\n", len(articles))
		return nil
	},
}

var summarizeCountry string
var summarizeStream bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize <region>",
	Short: "Build the extractive briefing for a region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := buildService()
		summary, err := service.Briefing(context.Background(), args[0], summarizeCountry)
		if err != nil {
			return err
		}

		if !summarizeStream {
			fmt.Println(summary)
			return nil
		}

		streamer := &stream.Streamer{
			BatchSize: cfg.Stream.BatchSize,
			Interval:  cfg.StreamInterval(),
		}
		for chunk := range streamer.Stream(cmd.Context(), summary) {
			if chunk.Done {
				break
			}
			fmt.Print(chunk.Text)
		}
		fmt.Println()
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// A .env can carry deployment overrides such as PORT.
		_ = godotenv.Load()

		port := cfg.Server.Port
		if env := os.Getenv("PORT"); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return fmt.Errorf("invalid PORT %q: %w", env, err)
			}
			port = p
		}

		service := buildService()
		refresher := news.NewRefresher(service, cfg.RefreshInterval())
		defer refresher.Stop()

		streamer := &stream.Streamer{
			BatchSize: cfg.Stream.BatchSize,
			Interval:  cfg.StreamInterval(),
		}
		return server.Serve(service, refresher, streamer, port)
	},
}

func buildService() *news.Service {
	registry := sources.NewRegistry(cfg.SourceRegions())
	fetcher := feed.NewFetcher(cfg.FetchTimeout(), cfg.Fetch.UserAgent)
	return news.NewService(registry, fetcher, cache.New(cfg.CacheTTL()))
}
