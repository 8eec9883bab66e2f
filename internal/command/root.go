// Package command implements easypub command line interface.
package command

import (
	"context"
	"fmt"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/urfave/cli/v2"

	"github.com/KonishchevDmitry/easypub/internal/config"
	"github.com/KonishchevDmitry/easypub/pkg/cache"
	"github.com/KonishchevDmitry/easypub/pkg/source"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

const envPrefix = "EASYPUB_"

func App() *cli.App {
	return &cli.App{
		Name:  "easypub",
		Usage: "Publication list generator",
		Description: `Generates a publication list from a list of DOIs and arXiv / ChemRxiv preprint IDs.

		Metadata is taken from manually written CSL-JSON files, CrossRef, arXiv and ChemRxiv.

		Flags can generally be set via environment variables, e.g.:

		--config => EASYPUB_CONFIG=easypub.toml
		--listen => EASYPUB_LISTEN=:8080`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file (TOML or YAML)",
				EnvVars: []string{envPrefix + "CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "enable debug logging",
				EnvVars: []string{envPrefix + "DEBUG"},
			},
			&cli.StringFlag{
				Name:    "doi-file",
				Usage:   "file with DOIs of published works",
				EnvVars: []string{envPrefix + "DOI_FILE"},
			},
			&cli.StringFlag{
				Name:    "preprint-file",
				Usage:   "file with preprint IDs",
				EnvVars: []string{envPrefix + "PREPRINT_FILE"},
			},
			&cli.StringFlag{
				Name:    "manual-dir",
				Usage:   "directory with manually written metadata",
				EnvVars: []string{envPrefix + "MANUAL_DIR"},
			},
		},
		Commands: []*cli.Command{
			generateCommand(),
			serveCommand(),
			resolveCommand(),
		},
		Before: func(c *cli.Context) error {
			logger, err := newLogger(c.Bool("debug"))
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			c.Context = logging.WithLogger(c.Context, logger)
			return nil
		},
		After: func(c *cli.Context) error {
			_ = logging.L(c.Context).Sync()
			return nil
		},
	}
}

// loadConfig loads the configuration file if it's specified and applies command line flags to it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	for name, value := range map[string]*string{
		"doi-file":      &cfg.DOIFile,
		"preprint-file": &cfg.PreprintFile,
		"manual-dir":    &cfg.ManualDir,
	} {
		if c.IsSet(name) {
			*value = c.String(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newResolver(ctx context.Context, cfg *config.Config, options ...source.ResolverOption) *source.Resolver {
	breaker := func(remote source.Source) source.Source {
		return source.NewBreaker(ctx, remote, cfg.BreakerSettings())
	}

	return source.NewResolver(source.Sources{
		Manual:   source.NewManual(cfg.ManualDir),
		CrossRef: breaker(source.NewCrossRef(cfg.Services.CrossRef)),
		ArXiv:    breaker(source.NewArXiv(cfg.Services.ArXiv)),
		ChemRxiv: breaker(source.NewChemRxiv(cfg.Services.ChemRxiv)),
	}, options...)
}

func newCache(cfg *config.Config) *cache.Cache[*work.Work] {
	return cache.New[*work.Work](time.Duration(cfg.CacheTTL))
}
