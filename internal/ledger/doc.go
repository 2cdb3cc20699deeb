// Package ledger defines the data model shared by the reconciliation engine:
// channel kinds, raw per-platform records, the canonical joined metric, and
// the persisted content link.
//
// Raw records are immutable facts produced by the import layer. Joined
// metrics are the de-duplicated cross-platform entities the registry owns.
// Monetary amounts use decimal arithmetic throughout; totals are always
// derived from the per-channel accumulators, never stored.
package ledger
