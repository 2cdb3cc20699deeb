package registry_test

import (
	"bytes"
	"strings"
	"testing"

	"tally/internal/ledger"
	"tally/internal/registry"
)

func TestSnapshotRoundTrip(t *testing.T) {
	reg := registry.New()
	reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Title: "Widget Review", Amount: amount("10.99"), Views: 4200, Duration: "5:00", Date: "2024-01-01"},
		{Channel: ledger.ChannelProductOnsite, ProductID: "p1", Title: "Widget", Amount: amount("5.01"), Clicks: 77},
		{Channel: ledger.ChannelSponsoredOnsite, Title: "Brand Spot", Amount: amount("123.45")},
	})

	var buf bytes.Buffer
	if err := reg.EncodeSnapshot(&buf); err != nil {
		t.Fatalf("EncodeSnapshot failed: %v", err)
	}

	decoded, err := registry.DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if decoded.Len() != reg.Len() {
		t.Fatalf("decoded size = %d, want %d", decoded.Len(), reg.Len())
	}

	for _, want := range reg.SortedByTotal() {
		got, ok := decoded.Get(want.ID)
		if !ok {
			t.Fatalf("entity %s missing after round trip", want.ID)
		}
		if !got.Total().Equal(want.Total()) {
			t.Errorf("total = %s, want %s", got.Total(), want.Total())
		}
		for _, ch := range ledger.AllChannels() {
			if !got.Revenue.Get(ch).Equal(want.Revenue.Get(ch)) {
				t.Errorf("channel %s = %s, want %s", ch, got.Revenue.Get(ch), want.Revenue.Get(ch))
			}
		}
		if got.Views != want.Views || got.Clicks != want.Clicks || got.Ordered != want.Ordered {
			t.Error("engagement counters must round-trip")
		}
	}

	// Indexes must be rebuilt, including the title index for title-keyed
	// entities, so further folds resolve the same owners.
	if _, ok := decoded.ByVideoID("v1"); !ok {
		t.Error("video index not rebuilt")
	}
	if _, ok := decoded.ByProductID("p1"); !ok {
		t.Error("product index not rebuilt")
	}
	before := decoded.Len()
	decoded.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelSponsoredOffsite, Title: "Brand Spot", Amount: amount("1.00")},
	})
	if decoded.Len() != before {
		t.Error("title-keyed record created a duplicate entity after decode")
	}
}

func TestSnapshotRoundTripsExtraProductIDs(t *testing.T) {
	reg := registry.New()
	reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", ProductID: "p1", Title: "Widget Review", Amount: amount("1.00")},
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", ProductID: "p2", Amount: amount("1.00")},
	})

	var buf bytes.Buffer
	if err := reg.EncodeSnapshot(&buf); err != nil {
		t.Fatalf("EncodeSnapshot failed: %v", err)
	}
	decoded, err := registry.DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}

	entity, ok := decoded.ByVideoID("v1")
	if !ok {
		t.Fatal("video index not rebuilt")
	}
	for _, productID := range []string{"p1", "p2"} {
		resolved, ok := decoded.ByProductID(productID)
		if !ok || resolved.ID != entity.ID {
			t.Fatalf("product id %s must resolve to the same entity after decode", productID)
		}
	}

	// Revenue addressed at the extra id keeps folding into the entity.
	decoded.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelProductOnsite, ProductID: "p2", Amount: amount("5.00")},
	})
	if decoded.Len() != 1 {
		t.Fatalf("registry size = %d, want 1", decoded.Len())
	}
	entity, _ = decoded.ByVideoID("v1")
	if !entity.Total().Equal(amount("7.00")) {
		t.Errorf("total = %s, want 7.00", entity.Total())
	}
}

func TestDecodeSnapshotRejectsWrongVersion(t *testing.T) {
	_, err := registry.DecodeSnapshot(strings.NewReader(`{"version": 99, "entities": []}`))
	if err == nil {
		t.Fatal("expected version mismatch error")
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := registry.DecodeSnapshot(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("expected decode error")
	}
}
