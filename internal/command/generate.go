package command

import (
	"bytes"
	"io"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/publist"
	"github.com/KonishchevDmitry/easypub/pkg/render"
	"github.com/KonishchevDmitry/easypub/pkg/rss"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate the publication list",
		Description: `Resolves all publications and writes the publication list HTML fragment.

		Preprints which have been published and publications which can't be found are reported.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output HTML file",
				EnvVars: []string{envPrefix + "OUTPUT"},
			},
			&cli.StringFlag{
				Name:    "rss",
				Usage:   "output RSS file",
				EnvVars: []string{envPrefix + "RSS_OUTPUT"},
			},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("output") {
				cfg.Output = c.String("output")
			}
			if c.IsSet("rss") {
				cfg.RSSOutput = c.String("rss")
			}

			input, err := publist.ReadInput(ctx, cfg.DOIFile, cfg.PreprintFile)
			if err != nil {
				return err
			}

			ctx = fetch.WithContext(ctx, prometheus.NewHistogram(prometheus.HistogramOpts{
				Name: "easypub_fetch_duration",
			}), cfg.Fetch())

			list, report, err := publist.Build(ctx, newResolver(ctx, cfg), input, publist.Options{
				Concurrency: cfg.Concurrency,
			})
			if err != nil {
				return err
			}

			var html bytes.Buffer
			if err := render.HTML(&html, list); err != nil {
				return err
			}

			var feed []byte
			if cfg.RSSOutput != "" {
				if feed, err = rss.Generate(render.RSS(list, cfg.Title, cfg.Link())); err != nil {
					return err
				}
			}

			logChanges(ctx, cfg.Output, html.Bytes(), cfg.RSSOutput, feed)

			if err := writeFile(ctx, cfg.Output, func(w io.Writer) error {
				_, err := w.Write(html.Bytes())
				return err
			}); err != nil {
				return err
			}

			if cfg.RSSOutput != "" {
				if err := writeFile(ctx, cfg.RSSOutput, func(w io.Writer) error {
					_, err := w.Write(feed)
					return err
				}); err != nil {
					return err
				}
			}

			report.Log(ctx, cfg.DOIFile, cfg.ManualDir)
			logging.L(ctx).Infof("The publication list with %d publications has been written to %q.", list.Len(), cfg.Output)

			return nil
		},
	}
}
