package registry

import (
	"strings"

	"tally/internal/ledger"
	"tally/internal/services"
	"tally/internal/textkey"
)

// Consolidate manually merges two canonical entities. Every additive field
// of discard is added into keep, platform identifiers missing on keep are
// copied over, and discard is removed from the registry.
//
// The numeric effect is commutative, but the surviving identity and title
// are always keep's. Callers should choose keep as the more canonical of
// the two, typically the one holding a video identifier.
func (r *Registry) Consolidate(keepID, discardID string) (*ledger.JoinedMetric, error) {
	if keepID == discardID {
		return nil, services.Wrap(services.ErrValidation, "registry", "consolidate", "keep and discard must be distinct", nil)
	}
	keep, ok := r.entities[keepID]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "registry", "consolidate", "keep entity "+keepID, nil)
	}
	discard, ok := r.entities[discardID]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "registry", "consolidate", "discard entity "+discardID, nil)
	}
	r.absorb(keep, discard)
	return keep, nil
}

// mergeEntities resolves an identifier conflict between two live entities by
// merging, preferring the video-id holder as survivor.
func (r *Registry) mergeEntities(a, b *ledger.JoinedMetric) *ledger.JoinedMetric {
	keep, discard := a, b
	if keep.VideoID == "" && discard.VideoID != "" {
		keep, discard = discard, keep
	}
	r.absorb(keep, discard)
	return keep
}

// absorb folds every additive field and identifier of discard into keep,
// re-points discard's index entries at keep, and removes discard.
func (r *Registry) absorb(keep, discard *ledger.JoinedMetric) {
	keep.Revenue.Merge(discard.Revenue)
	keep.Views += discard.Views
	keep.Clicks += discard.Clicks
	keep.Ordered += discard.Ordered

	for _, id := range discard.VideoIDs() {
		keep.AddVideoID(id)
	}
	for _, id := range discard.ProductIDs() {
		keep.AddProductID(id)
	}
	if keep.RawTitle == "" {
		keep.RawTitle = discard.RawTitle
	}
	if keep.Title == "" {
		keep.Title = discard.Title
	}
	if keep.Duration == "" {
		keep.Duration = discard.Duration
	}
	if keep.Published == "" {
		keep.Published = discard.Published
	}

	// Future records addressed at any of discard's keys now fold into keep.
	// An entity may own index entries beyond its id fields (a video mapped
	// to several products), so every index is swept, not just the fields.
	for id, owner := range r.byVideo {
		if owner == discard.ID {
			r.byVideo[id] = keep.ID
		}
	}
	for id, owner := range r.byProduct {
		if owner == discard.ID {
			r.byProduct[id] = keep.ID
		}
	}
	for key, owner := range r.byTitle {
		if owner == discard.ID {
			r.byTitle[key] = keep.ID
		}
	}

	delete(r.entities, discard.ID)
}

// titleIndexKey reconstructs the normalized-title key an entity was created
// under, which only exists for entities holding no platform identifier.
func titleIndexKey(entity *ledger.JoinedMetric) string {
	if entity.VideoID != "" || entity.ProductID != "" {
		return ""
	}
	return textkey.Normalize(entity.RawTitle)
}

// SkippedLink reports one persisted link that could not be replayed.
type SkippedLink struct {
	Link   ledger.ContentLink
	Reason string
}

// LinkResult summarizes an ApplyLinks pass.
type LinkResult struct {
	Merged  int
	Renamed int
	Skipped []SkippedLink
}

// ApplyLinks replays previously confirmed video-to-product associations so
// reconciliation runs stay deterministic without re-matching. A link whose
// sides resolve to two live entities merges them (video side survives); a
// display-name override is applied to the surviving video entity. A link
// with an unresolvable side is reported as skipped per item, never fatal;
// the override still applies when the video side alone resolves.
func (r *Registry) ApplyLinks(links []ledger.ContentLink) LinkResult {
	var result LinkResult
	for _, link := range links {
		videoEntity, okVideo := r.ByVideoID(link.VideoID)
		productEntity, okProduct := r.ByProductID(link.ProductID)

		switch {
		case okVideo && okProduct:
			if videoEntity.ID != productEntity.ID {
				r.absorb(videoEntity, productEntity)
				result.Merged++
			}
		case okVideo:
			result.Skipped = append(result.Skipped, SkippedLink{Link: link, Reason: "product side not present"})
		case okProduct:
			result.Skipped = append(result.Skipped, SkippedLink{Link: link, Reason: "video side not present"})
		default:
			result.Skipped = append(result.Skipped, SkippedLink{Link: link, Reason: "neither side present"})
			continue
		}

		if okVideo && strings.TrimSpace(link.DisplayName) != "" {
			videoEntity.Title = strings.TrimSpace(link.DisplayName)
			result.Renamed++
		}
	}
	return result
}

// ApplyNameSelections applies the user's selected display-name
// simplifications. The engine never generates proposals; it only applies
// the selected subset as title overrides on the owning video entities.
// Returns the number of entities renamed.
func (r *Registry) ApplyNameSelections(suggestions []ledger.NameSuggestion) int {
	renamed := 0
	for _, s := range suggestions {
		if !s.Selected || strings.TrimSpace(s.Proposed) == "" {
			continue
		}
		entity, ok := r.ByVideoID(s.VideoID)
		if !ok {
			continue
		}
		entity.Title = strings.TrimSpace(s.Proposed)
		renamed++
	}
	return renamed
}
