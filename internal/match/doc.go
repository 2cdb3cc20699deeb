// Package match proposes candidate links between orphaned video entities
// and orphaned product entities using additive weak-signal scoring: exact
// normalized-title equality, duration proximity, and date proximity.
//
// The matcher never picks winners. Multiple candidates per entity on either
// side are all surfaced, because generic titles collide constantly and only
// the human reviewer can resolve them. Candidates scoring at or above the
// auto-approve threshold arrive pre-selected but are still never committed
// without an explicit review commit.
//
// Exact-title pairs resolve through a normalized-title index in O(1) per
// lookup. The weaker substring-containment and descriptor-only signals need
// a pairwise scan, so they only run when both collections are at or below
// the configured size guard.
package match
