package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/config"
	"github.com/merev/gsr-api/internal/domain"
	"github.com/merev/gsr-api/internal/game"
	"github.com/merev/gsr-api/internal/logging"
	"github.com/merev/gsr-api/internal/report"
	"github.com/merev/gsr-api/internal/share"
	"github.com/merev/gsr-api/internal/storage"
	"github.com/urfave/cli/v2"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "gsrctl",
		Usage:     "administer the active game of a gsr-api deployment",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			shareCommand(),
			exportCommand(),
			standingsCommand(),
		},
	}
}

// withService opens the configured storage for the duration of fn.
func withService(c *cli.Context, fn func(ctx context.Context, cfg *config.Config, svc *game.Service) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Log, c.App.ErrWriter)
	if err != nil {
		return err
	}

	repo, closeRepo, err := storage.Open(c.Context, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	return fn(c.Context, cfg, game.NewService(repo, logger.With(slog.String("component", "gsrctl")), nil, nil))
}

func currentGame(ctx context.Context, svc *game.Service) (*domain.Game, error) {
	g, err := svc.CurrentGame(ctx)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("no active game")
	}
	return g, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the storage schema for the configured driver",
		Action: func(c *cli.Context) error {
			return withService(c, func(context.Context, *config.Config, *game.Service) error {
				fmt.Fprintln(c.App.Writer, "storage schema is up to date")
				return nil
			})
		},
	}
}

func shareCommand() *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "share links for the active game",
		Subcommands: []*cli.Command{
			{
				Name:  "encode",
				Usage: "print the share URL of the active game",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "origin", Usage: "override share.base_url"},
				},
				Action: func(c *cli.Context) error {
					return withService(c, func(ctx context.Context, cfg *config.Config, svc *game.Service) error {
						g, err := currentGame(ctx, svc)
						if err != nil {
							return err
						}
						origin := c.String("origin")
						if origin == "" {
							origin = cfg.Share.BaseURL
						}
						link, err := share.URL(g, origin)
						if err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, link)
						return nil
					})
				},
			},
			{
				Name:      "decode",
				Usage:     "print the game carried by a share URL or token",
				ArgsUsage: "<url|token>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "import", Usage: "replace the active game with the decoded one"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("expected exactly one share URL or token", 2)
					}
					g, err := share.ParseURL(c.Args().First())
					if err != nil {
						return err
					}
					if c.Bool("import") {
						return withService(c, func(ctx context.Context, _ *config.Config, svc *game.Service) error {
							if _, err := svc.ImportGame(ctx, g); err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, "game imported")
							return nil
						})
					}
					enc := json.NewEncoder(c.App.Writer)
					enc.SetIndent("", "  ")
					return enc.Encode(codec.ToDTO(g))
				},
			},
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the scorecard workbook or chart of the active game",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xlsx", Usage: "scorecard output path"},
			&cli.StringFlag{Name: "png", Usage: "cumulative chart output path"},
		},
		Action: func(c *cli.Context) error {
			if c.String("xlsx") == "" && c.String("png") == "" {
				return cli.Exit("nothing to export: pass --xlsx and/or --png", 2)
			}
			return withService(c, func(ctx context.Context, _ *config.Config, svc *game.Service) error {
				g, err := currentGame(ctx, svc)
				if err != nil {
					return err
				}
				if path := c.String("xlsx"); path != "" {
					data, err := report.Scorecard(g)
					if err != nil {
						return err
					}
					if err := os.WriteFile(path, data, 0o644); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
				}
				if path := c.String("png"); path != "" {
					data, err := report.CumulativeChart(g)
					if err != nil {
						return err
					}
					if err := os.WriteFile(path, data, 0o644); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
				}
				return nil
			})
		},
	}
}

func standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "print the current rankings",
		Action: func(c *cli.Context) error {
			return withService(c, func(ctx context.Context, _ *config.Config, svc *game.Service) error {
				st, err := svc.Standings(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RANK\tPLAYER\tTOTAL\tROUNDS")
				for _, r := range st.Rankings {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", r.Rank, r.PlayerName, r.Total, r.RoundsPlayed)
				}
				return tw.Flush()
			})
		},
	}
}
