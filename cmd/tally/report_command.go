package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ledger"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var channels bool
	var limit int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show reconciled revenue by entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			reg, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entities := reg.SortedByTotal()
			if len(entities) == 0 {
				fmt.Fprintln(out, "Registry is empty; run `tally ingest` first")
				return nil
			}
			if limit > 0 && len(entities) > limit {
				entities = entities[:limit]
			}

			headers := []string{"Title", "Video ID", "Product ID", "Total", "Views", "Clicks", "Ordered"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
			if channels {
				headers = []string{"Title", "Total"}
				aligns = []columnAlignment{alignLeft, alignRight}
				for _, ch := range ledger.AllChannels() {
					headers = append(headers, channelLabel(ch))
					aligns = append(aligns, alignRight)
				}
			}

			rows := make([][]string, 0, len(entities))
			for _, entity := range entities {
				if channels {
					row := []string{entityDisplayName(entity), formatAmount(entity.Total())}
					for _, ch := range ledger.AllChannels() {
						row = append(row, formatAmount(entity.Revenue.Get(ch)))
					}
					rows = append(rows, row)
					continue
				}
				rows = append(rows, []string{
					entityDisplayName(entity),
					orDash(entity.VideoID),
					orDash(entity.ProductID),
					formatAmount(entity.Total()),
					formatCount(entity.Views),
					formatCount(entity.Clicks),
					formatCount(entity.Ordered),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))

			summary := fmt.Sprintf("%d entities, %d orphan videos, %d orphan products",
				reg.Len(), len(reg.OrphanVideos()), len(reg.OrphanProducts()))
			if shouldColorize(out) {
				summary = "\x1b[34m" + summary + "\x1b[0m"
			}
			fmt.Fprintln(out, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&channels, "channels", false, "Break totals down per revenue channel")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the top N entities (0 shows all)")
	return cmd
}
