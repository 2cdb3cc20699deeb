package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ledger"
	"tally/internal/links"
)

func newLinksCommand(ctx *commandContext) *cobra.Command {
	linksCmd := &cobra.Command{
		Use:   "links",
		Short: "Manage confirmed content links",
	}

	linksCmd.AddCommand(newLinksListCommand(ctx))
	linksCmd.AddCommand(newLinksAddCommand(ctx))
	linksCmd.AddCommand(newLinksRenameCommand(ctx))
	linksCmd.AddCommand(newLinksRemoveCommand(ctx))

	return linksCmd
}

func newLinksListCommand(ctx *commandContext) *cobra.Command {
	var videoID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List confirmed links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *links.Store) error {
				var (
					all []ledger.ContentLink
					err error
				)
				if videoID != "" {
					all, err = store.ForVideo(cmd.Context(), videoID)
				} else {
					all, err = store.All(cmd.Context())
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(all) == 0 {
					fmt.Fprintln(out, "No links recorded")
					return nil
				}
				tableRows := make([][]string, 0, len(all))
				for _, link := range all {
					tableRows = append(tableRows, []string{
						link.VideoID,
						link.ProductID,
						orDash(link.DisplayName),
						link.UpdatedAt.Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Video ID", "Product ID", "Display Name", "Updated"},
					tableRows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&videoID, "video", "", "Only list links for one video identifier")
	return cmd
}

func newLinksAddCommand(ctx *commandContext) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "add <video-id> <product-id>",
		Short: "Record a confirmed association",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *links.Store) error {
				link, err := store.Upsert(cmd.Context(), ledger.ContentLink{
					VideoID:     args[0],
					ProductID:   args[1],
					DisplayName: displayName,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to %s\n", link.VideoID, link.ProductID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display-name override for the linked content")
	return cmd
}

func newLinksRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <video-id> <display-name>",
		Short: "Set the display-name override on a video's links",
		Long: "Apply a display-name override to every link of the given video. Pass an\n" +
			"empty string to clear the override and fall back to the platform title.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *links.Store) error {
				if err := store.Rename(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				if args[1] == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared display name for %s\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], args[1])
				}
				return nil
			})
		},
	}
}

func newLinksRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <video-id> <product-id>",
		Short: "Remove a confirmed association",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *links.Store) error {
				if err := store.Delete(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed link %s/%s\n", args[0], args[1])
				return nil
			})
		},
	}
}
