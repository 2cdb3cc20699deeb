// Package links persists confirmed video-to-product associations in SQLite
// so later reconciliation runs resolve already-verified pairs
// deterministically, without re-matching.
//
// The store holds one row per (video id, product id) pair plus an optional
// per-video display-name override. Opening the store takes an exclusive
// file lock on the data directory: the registry and its link store assume a
// single writer.
package links
