package ledger

import "testing"

func TestJoinedMetricIdentifierSlots(t *testing.T) {
	var m JoinedMetric

	m.AddProductID("p1")
	if m.ProductID != "p1" {
		t.Fatalf("first id must claim the primary slot, got %q", m.ProductID)
	}

	m.AddProductID("p2")
	m.AddProductID("p2")
	m.AddProductID("p1")
	m.AddProductID("")
	if m.ProductID != "p1" {
		t.Errorf("primary slot must not be overwritten, got %q", m.ProductID)
	}
	if len(m.ExtraProductIDs) != 1 || m.ExtraProductIDs[0] != "p2" {
		t.Errorf("extras = %v, want [p2]", m.ExtraProductIDs)
	}

	for _, id := range []string{"p1", "p2"} {
		if !m.HasProductID(id) {
			t.Errorf("HasProductID(%q) = false, want true", id)
		}
	}
	if m.HasProductID("p3") || m.HasProductID("") {
		t.Error("unknown and empty ids must not be owned")
	}

	ids := m.ProductIDs()
	if len(ids) != 2 || ids[0] != "p1" || ids[1] != "p2" {
		t.Errorf("ProductIDs() = %v, want [p1 p2]", ids)
	}

	if got := m.VideoIDs(); got != nil {
		t.Errorf("VideoIDs() on empty slots = %v, want nil", got)
	}
	m.AddVideoID("v1")
	if !m.HasVideoID("v1") || m.VideoID != "v1" {
		t.Error("video slot must behave like the product slot")
	}
}
