package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/buket_shop/internal/search"
	"github.com/Skotchmaster/buket_shop/internal/service"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Copy the product catalog into Elasticsearch",
	Long: `Read every product with its category and bulk index it into ES_INDEX.
Requires ES_URL to be set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !cfg.SearchEnabled() {
			return fmt.Errorf("reindex: ES_URL is not set")
		}

		r, err := openRepo(ctx)
		if err != nil {
			return err
		}
		defer closeDB(r.DB)

		searcher, err := search.NewClient(ctx, cfg)
		if err != nil {
			return err
		}

		svc := &service.CatalogService{Repo: r, Searcher: searcher}
		n, err := svc.ReindexProducts(ctx)
		if err != nil {
			return fmt.Errorf("reindex: %w", err)
		}
		logger.Info("reindex_done", "index", cfg.ESIndex, "documents", n)
		return nil
	},
}
