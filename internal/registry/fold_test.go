package registry_test

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/ledger"
	"tally/internal/registry"
)

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestFoldCreatesEntityPerIdentifier(t *testing.T) {
	reg := registry.New()
	result := reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Title: "Unboxing Widget", Amount: amount("10.00"), Views: 100},
		{Channel: ledger.ChannelProductOnsite, ProductID: "p1", Title: "Widget", Amount: amount("5.00"), Clicks: 20},
	})
	if len(result.Skipped) != 0 {
		t.Fatalf("unexpected skips: %v", result.Skipped)
	}
	if result.Applied != 2 {
		t.Fatalf("applied = %d, want 2", result.Applied)
	}
	if reg.Len() != 2 {
		t.Fatalf("registry size = %d, want 2", reg.Len())
	}

	video, ok := reg.ByVideoID("v1")
	if !ok {
		t.Fatal("video entity not resolvable")
	}
	if !video.Revenue.VideoAds.Equal(amount("10.00")) {
		t.Errorf("video ads revenue = %s, want 10.00", video.Revenue.VideoAds)
	}
	if video.Views != 100 {
		t.Errorf("views = %d, want 100", video.Views)
	}
	if !video.Orphan() {
		t.Error("single-platform entity should be an orphan")
	}
}

func TestFoldAccumulatesAcrossBatches(t *testing.T) {
	first := []ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Title: "Clip", Amount: amount("10.00")},
	}
	second := []ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Amount: amount("7.50")},
	}

	for name, batches := range map[string][][]ledger.RawRecord{
		"first then second": {first, second},
		"second then first": {second, first},
	} {
		reg := registry.New()
		for _, batch := range batches {
			reg.Fold(batch)
		}
		entity, ok := reg.ByVideoID("v1")
		if !ok {
			t.Fatalf("%s: entity missing", name)
		}
		if !entity.Revenue.VideoAds.Equal(amount("17.50")) {
			t.Errorf("%s: video ads revenue = %s, want 17.50", name, entity.Revenue.VideoAds)
		}
		if reg.Len() != 1 {
			t.Errorf("%s: registry size = %d, want 1", name, reg.Len())
		}
	}
}

func TestFoldOrderIndependence(t *testing.T) {
	records := []ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Title: "Widget Review", Amount: amount("10.00"), Views: 100, Duration: "5:00"},
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Amount: amount("2.25"), Views: 5},
		{Channel: ledger.ChannelProductOnsite, ProductID: "p1", Title: "Widget", Amount: amount("5.10"), Clicks: 12},
		{Channel: ledger.ChannelProductOffsite, ProductID: "p1", Amount: amount("0.90"), Ordered: 2},
		{Channel: ledger.ChannelSponsoredOnsite, Title: "Brand Deal Spot", Amount: amount("40.00")},
		{Channel: ledger.ChannelSponsoredOffsite, Title: "Brand Deal Spot", Amount: amount("1.00")},
		{Channel: ledger.ChannelVideoAds, VideoID: "v2", ProductID: "p2", Title: "Mapping Row", Amount: amount("0.00")},
		{Channel: ledger.ChannelProductOnsite, ProductID: "p2", Amount: amount("3.33")},
		// second product id mapped onto an entity whose product slot is
		// already taken, plus revenue addressed at that second id
		{Channel: ledger.ChannelVideoAds, VideoID: "v2", ProductID: "p3", Amount: amount("0.00")},
		{Channel: ledger.ChannelProductOffsite, ProductID: "p3", Amount: amount("5.00"), Ordered: 1},
	}

	type flat struct {
		total   string
		views   int64
		clicks  int64
		ordered int64
	}
	// Which claimed identifier lands in the primary slot is presentational;
	// the owned id sets and accumulators are the order-independent state.
	idSet := func(ids []string) string {
		sorted := append([]string(nil), ids...)
		sort.Strings(sorted)
		return strings.Join(sorted, ",")
	}
	summarize := func(reg *registry.Registry) map[string]flat {
		out := make(map[string]flat)
		for _, entity := range reg.SortedByTotal() {
			key := idSet(entity.VideoIDs()) + "|" + idSet(entity.ProductIDs()) + "|" + entity.RawTitle
			out[key] = flat{
				total:   entity.Total().String(),
				views:   entity.Views,
				clicks:  entity.Clicks,
				ordered: entity.Ordered,
			}
		}
		return out
	}

	base := registry.New()
	base.Fold(records)
	want := summarize(base)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]ledger.RawRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		reg := registry.New()
		// random batch split exercises multi-batch folding too
		cut := rng.Intn(len(shuffled) + 1)
		reg.Fold(shuffled[:cut])
		reg.Fold(shuffled[cut:])

		got := summarize(reg)
		if len(got) != len(want) {
			t.Fatalf("trial %d: entity count %d, want %d", trial, len(got), len(want))
		}
		for key, wantFlat := range want {
			gotFlat, ok := got[key]
			if !ok {
				t.Fatalf("trial %d: entity %q missing", trial, key)
			}
			if gotFlat != wantFlat {
				t.Errorf("trial %d: entity %q = %+v, want %+v", trial, key, gotFlat, wantFlat)
			}
		}
	}
}

func TestFoldTotalInvariant(t *testing.T) {
	reg := registry.New()
	reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Title: "A", Amount: amount("1.10")},
		{Channel: ledger.ChannelProductOnsite, VideoID: "v1", Amount: amount("2.20")},
		{Channel: ledger.ChannelProductOffsite, VideoID: "v1", Amount: amount("3.30")},
		{Channel: ledger.ChannelSponsoredOnsite, VideoID: "v1", Amount: amount("4.40")},
		{Channel: ledger.ChannelSponsoredOffsite, VideoID: "v1", Amount: amount("5.50")},
	})
	entity, ok := reg.ByVideoID("v1")
	if !ok {
		t.Fatal("entity missing")
	}
	sum := decimal.Zero
	for _, ch := range ledger.AllChannels() {
		sum = sum.Add(entity.Revenue.Get(ch))
	}
	if !entity.Total().Equal(sum) {
		t.Errorf("total %s != channel sum %s", entity.Total(), sum)
	}
	if !entity.Total().Equal(amount("16.50")) {
		t.Errorf("total = %s, want 16.50", entity.Total())
	}
}

func TestFoldSkipsMalformedRecords(t *testing.T) {
	reg := registry.New()
	result := reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, Title: "!!!", Amount: amount("1.00")},
		{Channel: "mystery", VideoID: "v9", Amount: amount("1.00")},
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Amount: amount("-5.00")},
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", Title: "Good", Amount: amount("2.00")},
	})
	if result.Applied != 1 {
		t.Errorf("applied = %d, want 1", result.Applied)
	}
	if len(result.Skipped) != 3 {
		t.Fatalf("skipped = %d, want 3", len(result.Skipped))
	}
	if reg.Len() != 1 {
		t.Errorf("registry size = %d, want 1", reg.Len())
	}
	entity, _ := reg.ByVideoID("v1")
	if !entity.Revenue.VideoAds.Equal(amount("2.00")) {
		t.Errorf("skips must not affect surviving records: %s", entity.Revenue.VideoAds)
	}
}

func TestFoldMergesDuplicateIdentifierClaims(t *testing.T) {
	reg := registry.New()
	// p1 first appears alone, then a mapping record claims it for v1.
	reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelProductOnsite, ProductID: "p1", Title: "Widget", Amount: amount("5.00")},
	})
	result := reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelVideoAds, VideoID: "v1", ProductID: "p1", Title: "Widget Review", Amount: amount("10.00")},
	})
	if result.Merged != 1 {
		t.Fatalf("merged = %d, want 1", result.Merged)
	}
	if reg.Len() != 1 {
		t.Fatalf("registry size = %d, want 1", reg.Len())
	}
	entity, ok := reg.ByVideoID("v1")
	if !ok {
		t.Fatal("merged entity not resolvable by video id")
	}
	byProduct, ok := reg.ByProductID("p1")
	if !ok || byProduct.ID != entity.ID {
		t.Fatal("both identifiers must resolve to the one surviving entity")
	}
	if !entity.Total().Equal(amount("15.00")) {
		t.Errorf("total = %s, want 15.00", entity.Total())
	}
}

func TestFoldMapsOneVideoToManyProducts(t *testing.T) {
	firstPair := ledger.RawRecord{Channel: ledger.ChannelVideoAds, VideoID: "v1", ProductID: "p1", Title: "Widget Review", Amount: amount("1.00")}
	secondPair := ledger.RawRecord{Channel: ledger.ChannelVideoAds, VideoID: "v1", ProductID: "p2", Amount: amount("1.00")}
	lateRevenue := ledger.RawRecord{Channel: ledger.ChannelProductOnsite, ProductID: "p2", Amount: amount("5.00")}

	orders := map[string][]ledger.RawRecord{
		"revenue after mapping":  {firstPair, secondPair, lateRevenue},
		"revenue before mapping": {lateRevenue, firstPair, secondPair},
	}
	for name, records := range orders {
		reg := registry.New()
		reg.Fold(records)

		if reg.Len() != 1 {
			t.Fatalf("%s: registry size = %d, want 1", name, reg.Len())
		}
		entity, ok := reg.ByVideoID("v1")
		if !ok {
			t.Fatalf("%s: entity not resolvable by video id", name)
		}
		// Revenue addressed at either product id lands on the one entity.
		for _, productID := range []string{"p1", "p2"} {
			resolved, ok := reg.ByProductID(productID)
			if !ok || resolved.ID != entity.ID {
				t.Fatalf("%s: product id %s must resolve to the video's entity", name, productID)
			}
			if !entity.HasProductID(productID) {
				t.Errorf("%s: entity must own product id %s", name, productID)
			}
		}
		if !entity.Total().Equal(amount("7.00")) {
			t.Errorf("%s: total = %s, want 7.00", name, entity.Total())
		}
	}
}

func TestFoldTitleFallbackKeying(t *testing.T) {
	reg := registry.New()
	reg.Fold([]ledger.RawRecord{
		{Channel: ledger.ChannelSponsoredOnsite, Title: "Brand: Deal!", Amount: amount("10.00")},
		{Channel: ledger.ChannelSponsoredOffsite, Title: "brand deal", Amount: amount("2.00")},
	})
	if reg.Len() != 1 {
		t.Fatalf("normalized-equal titles should share one entity, got %d", reg.Len())
	}
	for _, entity := range reg.SortedByTotal() {
		if !entity.Total().Equal(amount("12.00")) {
			t.Errorf("total = %s, want 12.00", entity.Total())
		}
	}
}
