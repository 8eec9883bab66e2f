package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/KonishchevDmitry/easypub/internal/config"
	"github.com/KonishchevDmitry/easypub/internal/generator"
	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/server"
	"github.com/KonishchevDmitry/easypub/pkg/source"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the publication list over HTTP",
		Description: `Periodically regenerates the publication list and serves it as /publications.html,
		/publications.rss and /report.json. Prometheus metrics are served on a separate address.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "address to serve the publication list on",
				EnvVars: []string{envPrefix + "LISTEN"},
			},
			&cli.StringFlag{
				Name:    "metrics",
				Usage:   "address to serve Prometheus metrics on",
				EnvVars: []string{envPrefix + "METRICS_LISTEN"},
			},
			&cli.StringFlag{
				Name:    "schedule",
				Usage:   "regeneration schedule in cron format",
				EnvVars: []string{envPrefix + "SCHEDULE"},
			},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			for name, value := range map[string]*string{
				"listen":   &cfg.Listen,
				"metrics":  &cfg.MetricsListen,
				"schedule": &cfg.Schedule,
			} {
				if c.IsSet(name) {
					*value = c.String(name)
				}
			}

			var resolver *source.Resolver
			cache := newCache(cfg)

			publications, err := generator.New(func(ctx context.Context) (*publist.List, *publist.Report, error) {
				return build(ctx, cfg, resolver)
			}, generator.Config{
				Schedule: cfg.Schedule,
				Fetch:    cfg.Fetch(),
				Title:    cfg.Title,
				Link:     cfg.Link(),
			})
			if err != nil {
				return err
			}

			resolver = newResolver(ctx, cfg,
				source.WithCache(cache), source.WithLookupCounter(publications.LookupCounter()))

			return server.New(publications).Serve(ctx, cfg.Listen, cfg.MetricsListen)
		},
	}
}

// build rereads the input files on each generation, so they may be edited without restarting the server.
func build(ctx context.Context, cfg *config.Config, resolver *source.Resolver) (*publist.List, *publist.Report, error) {
	input, err := publist.ReadInput(ctx, cfg.DOIFile, cfg.PreprintFile)
	if err != nil {
		return nil, nil, err
	}

	list, report, err := publist.Build(ctx, resolver, input, publist.Options{Concurrency: cfg.Concurrency})
	if err != nil {
		return nil, nil, err
	}

	resolver.Retain(ctx, input.Published, input.Preprints)
	report.Log(ctx, cfg.DOIFile, cfg.ManualDir)

	return list, report, nil
}
