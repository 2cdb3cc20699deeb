package ledger

import "github.com/shopspring/decimal"

// RawRecord is one immutable fact from a platform export: a single row of
// revenue and engagement tagged with its channel kind. Many raw records may
// describe the same real-world content asset; the registry folds them.
type RawRecord struct {
	Channel   Channel         `json:"channel"`
	VideoID   string          `json:"video_id,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	Title     string          `json:"title,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Views     int64           `json:"views,omitempty"`
	Clicks    int64           `json:"clicks,omitempty"`
	Ordered   int64           `json:"ordered,omitempty"`
	// Duration and Date are secondary descriptors used only for matching,
	// never for revenue math. Duration is "H:M:S", "M:S", or bare seconds;
	// Date is "2006-01-02".
	Duration string `json:"duration,omitempty"`
	Date     string `json:"date,omitempty"`
}
