package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/plwgs/apparel_api/internal/config"
	"github.com/plwgs/apparel_api/internal/database"
	"github.com/plwgs/apparel_api/internal/repository"
	"github.com/plwgs/apparel_api/internal/service"
)

// catalogctl runs the catalog maintenance operations from the command line
// so they can be executed outside the API server (deploy hooks, cron).
func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cmd := &cli.Command{
		Name:  "catalogctl",
		Usage: "Catalog maintenance for the apparel store",
		Commands: []*cli.Command{
			{
				Name:  "setup-size-pricing",
				Usage: "Add the size_pricing column, backfill defaults and ensure its index",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, _, err := openDatabase()
					if err != nil {
						return err
					}
					defer db.Close()

					svc := service.NewSchemaService(repository.NewSchemaRepository(db))
					report, err := svc.EnsureSizePricingColumn(ctx)
					if err != nil {
						return err
					}
					log.Info().
						Bool("column_added", report.ColumnAdded).
						Int64("rows_backfilled", report.RowsBackfilled).
						Bool("index_ensured", report.IndexEnsured).
						Msg("size pricing schema ensured")
					return nil
				},
			},
			{
				Name:  "fix-categories",
				Usage: "Ensure the fallback category exists and reassign orphaned products to it",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, _, err := openDatabase()
					if err != nil {
						return err
					}
					defer db.Close()

					svc := service.NewReconcileService(repository.NewCategoryRepository(db))
					report, err := svc.EnsureFallbackCategory(ctx)
					if err != nil {
						return err
					}
					log.Info().
						Str("category", report.CategoryName).
						Bool("created", report.CategoryCreated).
						Int64("orphans_reassigned", report.OrphansReassigned).
						Int("orphans_remaining", report.OrphansRemaining).
						Msg("categories reconciled")
					return nil
				},
			},
			{
				Name:  "build-pages",
				Usage: "Regenerate static product pages",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Usage: "build the page for a single product id"},
					&cli.BoolFlag{Name: "all", Usage: "build pages for every active product"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					id := int(c.Int("id"))
					all := c.Bool("all")
					if all == (id != 0) {
						return fmt.Errorf("pass exactly one of --id or --all")
					}

					db, cfg, err := openDatabase()
					if err != nil {
						return err
					}
					defer db.Close()

					pages, err := service.NewStaticPageService(&cfg.Catalog)
					if err != nil {
						return err
					}
					images, err := service.NewImageService(&cfg.Cloudinary)
					if err != nil {
						return err
					}
					svc := service.NewProductService(repository.NewProductRepository(db), images, pages, nil)

					if all {
						built, failures := svc.BuildAllPages(ctx)
						for _, ferr := range failures {
							log.Warn().Err(ferr).Msg("page build failed")
						}
						log.Info().
							Int("built", built).
							Int("failed", len(failures)).
							Str("dir", cfg.Catalog.StaticPagesDir).
							Msg("static pages built")
						if built == 0 && len(failures) > 0 {
							return fmt.Errorf("all page builds failed")
						}
						return nil
					}

					path, err := svc.RebuildPage(ctx, id)
					if err != nil {
						return err
					}
					log.Info().Str("path", path).Msg("static page built")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func openDatabase() (db *sqlx.DB, cfg *config.Config, err error) {
	cfg, err = config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	db, err = database.Connect(&cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, cfg, nil
}
