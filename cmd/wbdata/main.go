// Command wbdata queries the World Bank Open Data API from the command
// line, caching responses on local disk between runs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/rogomes/wbdata/pkg/cache"
	"github.com/rogomes/wbdata/pkg/client"
	"github.com/rogomes/wbdata/pkg/logging"
	"github.com/rogomes/wbdata/pkg/wbdata"
)

// Version names the per-version cache directory; bumping it starts cold.
const Version = "0.3.0"

type config struct {
	CacheDir  string `env:"WBDATA_CACHE_DIR"`
	LogLevel  string `env:"WBDATA_LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"WBDATA_LOG_PRETTY"`
	RedisAddr string `env:"WBDATA_REDIS_ADDR"`
	BaseURL   string `env:"WBDATA_BASE_URL" envDefault:"https://api.worldbank.org/v2"`
	NoCache   bool   `env:"WBDATA_NO_CACHE"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// snapshotPath resolves the cache snapshot location: the configured
// directory, or the user cache dir under a per-version subdirectory.
func snapshotPath(cfg config) (string, error) {
	dir := cfg.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolve user cache dir: %w", err)
		}
		dir = filepath.Join(base, "wbdata", Version)
	}
	return filepath.Join(dir, "responses.json"), nil
}

func newBackend(ctx context.Context, cfg config) (cache.Backend, error) {
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisBackend(redisClient), nil
	}

	path, err := snapshotPath(cfg)
	if err != nil {
		return nil, err
	}
	return cache.NewFileBackend(path)
}

func newDomainClient(ctx context.Context, cfg config, noCache bool) (*wbdata.Client, error) {
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(backend, logging.NewLogger("cache"))
	store.Load(ctx)

	api := client.New(store, client.DefaultConfig())

	opts := []wbdata.Option{wbdata.WithBaseURL(cfg.BaseURL)}
	if noCache || cfg.NoCache {
		opts = append(opts, wbdata.WithoutCache())
	}
	return wbdata.New(api, opts...), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	var noCache bool

	root := &cobra.Command{
		Use:           "wbdata",
		Short:         "Query the World Bank Open Data API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logging.Setup(logging.Config{
				Level:  logging.Level(cfg.LogLevel),
				Pretty: cfg.LogPretty,
			})
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&noCache, "no-cache", false, "bypass the response cache entirely")

	newClient := func(cmd *cobra.Command) (*wbdata.Client, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return newDomainClient(cmd.Context(), cfg, noCache)
	}

	countries := &cobra.Command{
		Use:   "countries [query]",
		Short: "List countries, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := newClient(cmd)
			if err != nil {
				return err
			}
			var list []wbdata.Country
			if len(args) == 1 {
				list, err = wb.SearchCountries(cmd.Context(), args[0])
			} else {
				list, err = wb.GetCountries(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	var source string
	indicators := &cobra.Command{
		Use:   "indicators [query]",
		Short: "List indicators, optionally filtered by name or source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := newClient(cmd)
			if err != nil {
				return err
			}
			var list []wbdata.Indicator
			switch {
			case source != "":
				list, err = wb.GetIndicatorsBySource(cmd.Context(), source)
			case len(args) == 1:
				list, err = wb.SearchIndicators(cmd.Context(), args[0])
			default:
				list, err = wb.GetIndicators(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}
	indicators.Flags().StringVar(&source, "source", "", "restrict to one source id")

	var dataCountries []string
	var dateRange string
	data := &cobra.Command{
		Use:   "data <indicator>",
		Short: "Fetch an indicator time series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := newClient(cmd)
			if err != nil {
				return err
			}
			set, err := wb.GetIndicatorData(cmd.Context(), args[0], dataCountries, dateRange)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), set)
		},
	}
	data.Flags().StringSliceVar(&dataCountries, "country", nil, "country ISO codes (default: all)")
	data.Flags().StringVar(&dateRange, "date", "", "date range as YYYY:YYYY")

	sources := &cobra.Command{
		Use:   "sources",
		Short: "List data sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := newClient(cmd)
			if err != nil {
				return err
			}
			list, err := wb.GetSources(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	topics := &cobra.Command{
		Use:   "topics",
		Short: "List topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := newClient(cmd)
			if err != nil {
				return err
			}
			list, err := wb.GetTopics(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	root.AddCommand(countries, indicators, data, sources, topics)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
