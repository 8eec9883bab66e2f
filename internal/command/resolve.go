package command

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/KonishchevDmitry/easypub/pkg/fetch"
	"github.com/KonishchevDmitry/easypub/pkg/work"
)

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve publication metadata",
		ArgsUsage: "ID...",
		Description: `Resolves the specified DOIs or preprint IDs the same way as the publication list generator does and
		prints the metadata as CSL-JSON. Useful for writing manual metadata files.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "preprint",
				Aliases: []string{"p"},
				Usage:   "resolve the IDs as preprints",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context

			ids := c.Args().Slice()
			if len(ids) == 0 {
				return errors.New("no publication IDs are specified")
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx = fetch.WithContext(ctx, prometheus.NewHistogram(prometheus.HistogramOpts{
				Name: "easypub_fetch_duration",
			}), cfg.Fetch())

			resolver := newResolver(ctx, cfg)
			resolve := resolver.Published
			if c.Bool("preprint") {
				resolve = resolver.Preprint
			}

			works := make([]*work.Work, 0, len(ids))
			for _, id := range ids {
				result, err := resolve(ctx, id)
				if err != nil {
					return err
				}
				works = append(works, result)
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(works)
		},
	}
}
