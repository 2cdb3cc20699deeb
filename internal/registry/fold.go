package registry

import (
	"strings"

	"tally/internal/ledger"
)

// SkippedRecord reports one raw record the fold could not apply, with the
// reason it was rejected. Skips never abort the batch.
type SkippedRecord struct {
	Record ledger.RawRecord
	Reason string
}

// FoldResult summarizes one fold batch.
type FoldResult struct {
	Applied int
	Merged  int
	Skipped []SkippedRecord
}

// Fold applies a batch of raw channel records to the registry. Each record
// resolves to exactly one entity (created on first sight) and its amount and
// engagement counters are added to that entity's accumulators.
//
// The fold is an additive, order-independent operation: any permutation or
// re-batching of the same records produces identical accumulators. Callers
// must supply batches already deduplicated by source; re-folding the same
// rows adds them again.
func (r *Registry) Fold(records []ledger.RawRecord) FoldResult {
	var result FoldResult
	for _, rec := range records {
		if reason, ok := rejectReason(rec); !ok {
			result.Skipped = append(result.Skipped, SkippedRecord{Record: rec, Reason: reason})
			continue
		}

		index, key, _ := canonicalKey(rec)
		entity := r.resolve(index, key, rec)
		entity, merges := r.claimIdentifiers(entity, rec)
		result.Merged += merges

		entity.Revenue.Add(rec.Channel, rec.Amount)
		entity.Views += rec.Views
		entity.Clicks += rec.Clicks
		entity.Ordered += rec.Ordered
		fillDescriptors(entity, rec)
		result.Applied++
	}
	return result
}

func rejectReason(rec ledger.RawRecord) (string, bool) {
	if _, ok := ledger.ParseChannel(string(rec.Channel)); !ok {
		return "unknown channel kind", false
	}
	if _, _, ok := canonicalKey(rec); !ok {
		return "no usable identifier or title", false
	}
	if rec.Amount.IsNegative() {
		return "negative amount", false
	}
	if rec.Views < 0 || rec.Clicks < 0 || rec.Ordered < 0 {
		return "negative engagement count", false
	}
	return "", true
}

// claimIdentifiers registers any platform identifier the record carries
// beyond its canonical key. A secondary identifier already owned by another
// entity is an identity conflict and is resolved by merging the two
// entities, never by overwriting. An unclaimed identifier is always indexed
// at the resolving entity, even when the entity's id field already holds a
// different value (one video may map to several products); later records
// keyed by that identifier then fold into the same entity regardless of
// arrival order. Returns the surviving entity and the number of merges
// performed.
func (r *Registry) claimIdentifiers(entity *ledger.JoinedMetric, rec ledger.RawRecord) (*ledger.JoinedMetric, int) {
	merges := 0
	if v := strings.TrimSpace(rec.VideoID); v != "" {
		if ownerID, ok := r.byVideo[v]; ok {
			if ownerID != entity.ID {
				entity = r.mergeEntities(r.entities[ownerID], entity)
				merges++
			}
		} else {
			entity.AddVideoID(v)
			r.byVideo[v] = entity.ID
		}
	}
	if p := strings.TrimSpace(rec.ProductID); p != "" {
		if ownerID, ok := r.byProduct[p]; ok {
			if ownerID != entity.ID {
				entity = r.mergeEntities(r.entities[ownerID], entity)
				merges++
			}
		} else {
			entity.AddProductID(p)
			r.byProduct[p] = entity.ID
		}
	}
	return entity, merges
}

// fillDescriptors copies matching descriptors from a record onto its entity
// where the entity has none yet. Descriptors feed the matcher only; revenue
// math never reads them.
func fillDescriptors(entity *ledger.JoinedMetric, rec ledger.RawRecord) {
	if entity.RawTitle == "" && strings.TrimSpace(rec.Title) != "" {
		entity.RawTitle = strings.TrimSpace(rec.Title)
	}
	if entity.Title == "" {
		entity.Title = entity.RawTitle
	}
	if entity.Duration == "" && strings.TrimSpace(rec.Duration) != "" {
		entity.Duration = strings.TrimSpace(rec.Duration)
	}
	if entity.Published == "" && strings.TrimSpace(rec.Date) != "" {
		entity.Published = strings.TrimSpace(rec.Date)
	}
}
