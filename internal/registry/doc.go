// Package registry owns the canonical entity collection: the revenue
// aggregator that folds raw channel records into joined metrics, the
// consolidation operator that merges two canonical entities, and the link
// applier that replays confirmed video-to-product associations.
//
// Every record resolves to exactly one canonical key (video id, else product
// id, else normalized title) through hash indexes, so the fold is amortized
// O(1) per record and no two live entities can claim the same non-empty
// platform identifier. Identifier conflicts are resolved by merging, never
// by overwriting.
//
// The registry is a plain in-memory structure with no locking; it assumes a
// single writer, consistent with its synchronous embedding.
package registry
