package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/links"
	"tally/internal/logging"
)

func newConsolidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "consolidate <keep-id> <discard-id>",
		Short: "Merge two registry entities by hand",
		Long: "Fold the discarded entity's accumulators into the kept one and remove\n" +
			"it. The kept entity's identity and platform identifiers survive; the\n" +
			"discarded side only fills identifier slots the kept side lacks.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(ctx.ensureLogger(), "consolidate")

			return ctx.withStore(func(store *links.Store) error {
				reg, err := loadRegistry(cfg)
				if err != nil {
					return err
				}

				kept, err := reg.Consolidate(args[0], args[1])
				if err != nil {
					return err
				}
				if err := saveRegistry(cfg, reg); err != nil {
					return err
				}

				logger.Info("entities consolidated",
					logging.String("keep", args[0]),
					logging.String("discard", args[1]),
					logging.String("total", kept.Total().String()),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Consolidated into %s (%s), total %s\n",
					entityDisplayName(kept), kept.ID, formatAmount(kept.Total()))
				return nil
			})
		},
	}
}
