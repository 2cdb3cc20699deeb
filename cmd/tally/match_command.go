package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/links"
	"tally/internal/logging"
	"tally/internal/match"
	"tally/internal/review"
	"tally/internal/services"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var applyAuto bool
	var applyAll bool
	var selectFlag string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Propose and commit video-to-product joins",
		Long: "Replay stored links, score orphan entities against each other, and show\n" +
			"the ranked candidate table. Without flags the command only proposes;\n" +
			"--apply-auto commits the auto-approved candidates, --apply-all commits\n" +
			"every candidate, and --select commits the listed row numbers.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if applyAll && strings.TrimSpace(selectFlag) != "" {
				return services.Wrap(services.ErrValidation, "cli", "match",
					"--apply-all and --select are mutually exclusive", nil)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			return ctx.withStore(func(store *links.Store) error {
				reg, err := loadRegistry(cfg)
				if err != nil {
					return err
				}

				storedLinks, err := store.All(cmd.Context())
				if err != nil {
					return err
				}
				reg.ApplyLinks(storedLinks)

				matcher := match.New(match.PolicyFromConfig(cfg.Matching), logger)
				candidates := matcher.Propose(reg.OrphanVideos(), reg.OrphanProducts())

				out := cmd.OutOrStdout()
				if len(candidates) == 0 {
					fmt.Fprintln(out, "No match candidates")
					return nil
				}

				printCandidates(cmd, candidates)

				if !applyAuto && !applyAll && strings.TrimSpace(selectFlag) == "" {
					fmt.Fprintln(out, "Re-run with --apply-auto, --apply-all, or --select to commit")
					return nil
				}

				session := review.NewSession(logger)
				session.StageCandidates(candidates)
				if err := session.Begin(); err != nil {
					return err
				}

				switch {
				case applyAll:
					if err := session.SetAll(true); err != nil {
						return err
					}
				case strings.TrimSpace(selectFlag) != "":
					if err := session.SetAll(false); err != nil {
						return err
					}
					indexes, err := parseSelection(selectFlag, session.Len())
					if err != nil {
						return err
					}
					for _, index := range indexes {
						if err := session.Toggle(index); err != nil {
							return err
						}
					}
				}
				// applyAuto keeps the staged defaults: exactly the
				// auto-approved candidates arrive pre-selected.

				result, err := session.Commit(reg)
				if err != nil {
					return err
				}

				if len(result.Links) > 0 {
					if err := store.SaveAll(cmd.Context(), result.Links); err != nil {
						return err
					}
				}
				if err := saveRegistry(cfg, reg); err != nil {
					return err
				}

				logger.Info("match commit",
					logging.Int("applied", result.Applied),
					logging.Int("links", len(result.Links)),
					logging.Int("skipped", len(result.Skipped)),
				)
				fmt.Fprintf(out, "Committed %d joins (%d links persisted, %d skipped)\n",
					result.Applied, len(result.Links), len(result.Skipped))
				for _, skip := range result.Skipped {
					fmt.Fprintf(out, "  skipped %s / %s: %s\n",
						orDash(skip.Candidate.VideoTitle), orDash(skip.Candidate.ProductTitle), skip.Reason)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&applyAuto, "apply-auto", false, "Commit only auto-approved candidates")
	cmd.Flags().BoolVar(&applyAll, "apply-all", false, "Commit every proposed candidate")
	cmd.Flags().StringVar(&selectFlag, "select", "", "Comma-separated candidate numbers to commit (e.g. 1,3)")
	return cmd
}

func printCandidates(cmd *cobra.Command, candidates []match.Candidate) {
	rows := make([][]string, 0, len(candidates))
	for i, candidate := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orDash(candidate.VideoTitle),
			orDash(candidate.ProductTitle),
			string(candidate.Basis),
			strconv.Itoa(candidate.Score),
			yesNo(candidate.AutoApprove),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"#", "Video", "Product", "Basis", "Score", "Auto"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
}

// parseSelection converts a 1-based comma-separated list into session
// indexes, rejecting out-of-range or malformed entries up front.
func parseSelection(raw string, limit int) ([]int, error) {
	parts := strings.Split(raw, ",")
	indexes := make([]int, 0, len(parts))
	seen := make(map[int]struct{}, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		number, err := strconv.Atoi(trimmed)
		if err != nil || number < 1 || number > limit {
			return nil, services.Wrap(services.ErrValidation, "cli", "match",
				fmt.Sprintf("invalid selection %q (expected 1-%d)", trimmed, limit), nil)
		}
		if _, dup := seen[number-1]; dup {
			continue
		}
		seen[number-1] = struct{}{}
		indexes = append(indexes, number-1)
	}
	if len(indexes) == 0 {
		return nil, services.Wrap(services.ErrValidation, "cli", "match", "empty selection", nil)
	}
	return indexes, nil
}
