package registry

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"tally/internal/ledger"
	"tally/internal/textkey"
)

// Registry is the canonical entity collection plus the identifier indexes
// used to resolve raw records and links to their owning entity.
type Registry struct {
	entities  map[string]*ledger.JoinedMetric
	byVideo   map[string]string
	byProduct map[string]string
	byTitle   map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entities:  make(map[string]*ledger.JoinedMetric),
		byVideo:   make(map[string]string),
		byProduct: make(map[string]string),
		byTitle:   make(map[string]string),
	}
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Get returns the entity with the given stable identifier.
func (r *Registry) Get(id string) (*ledger.JoinedMetric, bool) {
	entity, ok := r.entities[id]
	return entity, ok
}

// ByVideoID resolves a platform video identifier to its owning entity.
func (r *Registry) ByVideoID(videoID string) (*ledger.JoinedMetric, bool) {
	id, ok := r.byVideo[videoID]
	if !ok {
		return nil, false
	}
	return r.entities[id], true
}

// ByProductID resolves a platform product identifier to its owning entity.
func (r *Registry) ByProductID(productID string) (*ledger.JoinedMetric, bool) {
	id, ok := r.byProduct[productID]
	if !ok {
		return nil, false
	}
	return r.entities[id], true
}

// canonicalKey returns the single resolution key for a raw record: video id
// if present, else product id, else the normalized title. ok=false means the
// record carries no usable identity at all.
func canonicalKey(rec ledger.RawRecord) (index, key string, ok bool) {
	if v := strings.TrimSpace(rec.VideoID); v != "" {
		return "video", v, true
	}
	if p := strings.TrimSpace(rec.ProductID); p != "" {
		return "product", p, true
	}
	if title := textkey.Normalize(rec.Title); title != "" {
		return "title", title, true
	}
	return "", "", false
}

// resolve finds the entity owning a canonical key, creating one when absent.
func (r *Registry) resolve(index, key string, rec ledger.RawRecord) *ledger.JoinedMetric {
	var idx map[string]string
	switch index {
	case "video":
		idx = r.byVideo
	case "product":
		idx = r.byProduct
	default:
		idx = r.byTitle
	}

	if id, ok := idx[key]; ok {
		return r.entities[id]
	}

	entity := &ledger.JoinedMetric{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(rec.Title),
		RawTitle: strings.TrimSpace(rec.Title),
	}
	switch index {
	case "video":
		entity.VideoID = key
	case "product":
		entity.ProductID = key
	}
	r.entities[entity.ID] = entity
	idx[key] = entity.ID
	return entity
}

// OrphanVideos returns entities that carry a video identifier but no product
// identifier, in deterministic order.
func (r *Registry) OrphanVideos() []*ledger.JoinedMetric {
	var out []*ledger.JoinedMetric
	for _, entity := range r.entities {
		if entity.VideoID != "" && entity.ProductID == "" {
			out = append(out, entity)
		}
	}
	sortEntities(out)
	return out
}

// OrphanProducts returns entities with no video identifier: product-keyed
// and title-keyed entities alike, since either may be the product side of a
// future match.
func (r *Registry) OrphanProducts() []*ledger.JoinedMetric {
	var out []*ledger.JoinedMetric
	for _, entity := range r.entities {
		if entity.VideoID == "" {
			out = append(out, entity)
		}
	}
	sortEntities(out)
	return out
}

// SortedByTotal returns every live entity ordered by descending total for
// presentation. Ties break on title, then entity id, to keep output stable.
func (r *Registry) SortedByTotal() []*ledger.JoinedMetric {
	out := make([]*ledger.JoinedMetric, 0, len(r.entities))
	for _, entity := range r.entities {
		out = append(out, entity)
	}
	sort.Slice(out, func(i, j int) bool {
		cmp := out[i].Total().Cmp(out[j].Total())
		if cmp != 0 {
			return cmp > 0
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortEntities(entities []*ledger.JoinedMetric) {
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Title != entities[j].Title {
			return entities[i].Title < entities[j].Title
		}
		return entities[i].ID < entities[j].ID
	})
}
