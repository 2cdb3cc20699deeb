// Package review implements the staged verification workflow: proposals are
// staged, presented with per-item selection, and only an explicit commit
// applies the selected subset to the canonical registry.
//
// The session is a small state machine (idle, staged, reviewing, committed)
// with a clear transition back to idle from any state. Nothing touches the
// registry until commit; unselected proposals are discarded without side
// effects, and a stale proposal is skipped with a warning while the rest of
// the batch commits. Re-staging discards whatever a previous cycle left
// behind.
//
// Two stage kinds exist for multi-stage imports: match candidates, then
// display-name selections.
package review
