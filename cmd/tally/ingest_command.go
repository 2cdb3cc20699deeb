package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ingest"
	"tally/internal/links"
	"tally/internal/logging"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var showSkips bool

	cmd := &cobra.Command{
		Use:   "ingest <batch.json>...",
		Short: "Fold raw revenue batches into the registry",
		Long: "Decode one or more JSON batch files of raw revenue records and fold them\n" +
			"into the registry snapshot. Records are additive: feeding the same batch\n" +
			"twice doubles its contribution, so deduplicate batches before ingesting.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(ctx.ensureLogger(), "ingest")

			records, err := ingest.LoadFiles(args)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *links.Store) error {
				reg, err := loadRegistry(cfg)
				if err != nil {
					return err
				}

				result := reg.Fold(records)

				storedLinks, err := store.All(cmd.Context())
				if err != nil {
					return err
				}
				linkResult := reg.ApplyLinks(storedLinks)

				if err := saveRegistry(cfg, reg); err != nil {
					return err
				}

				logger.Info("ingest complete",
					logging.Int("records", len(records)),
					logging.Int("applied", result.Applied),
					logging.Int("merged", result.Merged),
					logging.Int("skipped", len(result.Skipped)),
					logging.Int("links_replayed", linkResult.Merged),
				)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Applied %d of %d records (%d identifier merges, %d skipped)\n",
					result.Applied, len(records), result.Merged, len(result.Skipped))
				if linkResult.Merged > 0 || linkResult.Renamed > 0 {
					fmt.Fprintf(out, "Replayed stored links: %d merged, %d renamed\n",
						linkResult.Merged, linkResult.Renamed)
				}
				fmt.Fprintf(out, "Registry now tracks %d entities\n", reg.Len())

				if showSkips && len(result.Skipped) > 0 {
					rows := make([][]string, 0, len(result.Skipped))
					for _, skip := range result.Skipped {
						rows = append(rows, []string{
							string(skip.Record.Channel),
							orDash(skip.Record.VideoID),
							orDash(skip.Record.ProductID),
							skip.Reason,
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Channel", "Video ID", "Product ID", "Reason"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
					))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showSkips, "show-skips", false, "List skipped records with reasons")
	return cmd
}
