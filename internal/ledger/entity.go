package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// JoinedMetric is the canonical cross-platform entity: one real-world piece
// of content with revenue folded in from every channel it has been linked to.
// Either platform identifier may be empty; an entity holding exactly one is
// an orphan and remains a matching candidate. One piece of content may be
// sold as several products, so identifiers claimed beyond the primary slots
// are kept as extras and resolve to the same entity.
type JoinedMetric struct {
	ID              string   `json:"id"`
	VideoID         string   `json:"video_id,omitempty"`
	ProductID       string   `json:"product_id,omitempty"`
	ExtraVideoIDs   []string `json:"extra_video_ids,omitempty"`
	ExtraProductIDs []string `json:"extra_product_ids,omitempty"`
	Title           string   `json:"title"`
	RawTitle        string   `json:"raw_title,omitempty"`
	Revenue         Revenue  `json:"revenue"`
	Views           int64    `json:"views"`
	Clicks          int64    `json:"clicks"`
	Ordered         int64    `json:"ordered"`
	Duration        string   `json:"duration,omitempty"`
	Published       string   `json:"published,omitempty"`
}

// Total returns the derived gross yield: the sum of every channel
// accumulator. It is recomputed on each call and never stored.
func (m *JoinedMetric) Total() decimal.Decimal {
	return m.Revenue.Total()
}

// Orphan reports whether the entity carries at most one platform identifier
// and is therefore eligible as candidate-matcher input.
func (m *JoinedMetric) Orphan() bool {
	return m.VideoID == "" || m.ProductID == ""
}

// AddVideoID records a video identifier. The first id claims the primary
// slot; further distinct ids become extras. Duplicates and empty ids are
// no-ops.
func (m *JoinedMetric) AddVideoID(id string) {
	if id == "" || m.HasVideoID(id) {
		return
	}
	if m.VideoID == "" {
		m.VideoID = id
		return
	}
	m.ExtraVideoIDs = append(m.ExtraVideoIDs, id)
}

// AddProductID records a product identifier, extras after the first.
func (m *JoinedMetric) AddProductID(id string) {
	if id == "" || m.HasProductID(id) {
		return
	}
	if m.ProductID == "" {
		m.ProductID = id
		return
	}
	m.ExtraProductIDs = append(m.ExtraProductIDs, id)
}

// HasVideoID reports whether the entity carries the id in any slot.
func (m *JoinedMetric) HasVideoID(id string) bool {
	if id == "" {
		return false
	}
	if m.VideoID == id {
		return true
	}
	for _, extra := range m.ExtraVideoIDs {
		if extra == id {
			return true
		}
	}
	return false
}

// HasProductID reports whether the entity carries the id in any slot.
func (m *JoinedMetric) HasProductID(id string) bool {
	if id == "" {
		return false
	}
	if m.ProductID == id {
		return true
	}
	for _, extra := range m.ExtraProductIDs {
		if extra == id {
			return true
		}
	}
	return false
}

// VideoIDs returns every video identifier the entity owns, primary first.
func (m *JoinedMetric) VideoIDs() []string {
	if m.VideoID == "" {
		return nil
	}
	return append([]string{m.VideoID}, m.ExtraVideoIDs...)
}

// ProductIDs returns every product identifier the entity owns, primary first.
func (m *JoinedMetric) ProductIDs() []string {
	if m.ProductID == "" {
		return nil
	}
	return append([]string{m.ProductID}, m.ExtraProductIDs...)
}

// ContentLink records one confirmed video-to-product association plus an
// optional display-name override. A video may link to several products; each
// pair is one link. Links make later reconciliation runs deterministic
// without re-matching. Absence of a link simply means "unlinked".
type ContentLink struct {
	ID          int64     `json:"id,omitempty"`
	VideoID     string    `json:"video_id"`
	ProductID   string    `json:"product_id"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// NameSuggestion is one proposed display-name simplification awaiting user
// selection. The engine never generates proposals; it only applies the
// selected ones as display-name overrides.
type NameSuggestion struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Proposed string `json:"proposed"`
	Selected bool   `json:"selected"`
}
