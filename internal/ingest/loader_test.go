package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tally/internal/ingest"
	"tally/internal/ledger"
	"tally/internal/services"
)

func TestDecodeArrayForm(t *testing.T) {
	payload := `[
        {"channel": "video_ads", "video_id": "v1", "title": "Desk Tour", "amount": "12.34", "views": 100},
        {"channel": "product_onsite", "product_id": "p1", "title": "Walnut Desk", "amount": 5.5, "ordered": 2}
    ]`

	records, err := ingest.Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Channel != ledger.ChannelVideoAds || records[0].VideoID != "v1" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[0].Amount.String() != "12.34" {
		t.Fatalf("expected decimal amount 12.34, got %s", records[0].Amount)
	}
	if records[1].Amount.String() != "5.5" {
		t.Fatalf("expected numeric amount 5.5, got %s", records[1].Amount)
	}
}

func TestDecodeEnvelopeForm(t *testing.T) {
	payload := `{"records": [{"channel": "sponsored_onsite", "video_id": "v1", "amount": "1.00"}]}`

	records, err := ingest.Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(records) != 1 || records[0].Channel != ledger.ChannelSponsoredOnsite {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := ingest.Decode(strings.NewReader(`"not a batch"`)); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := os.WriteFile(first, []byte(`[{"channel": "video_ads", "video_id": "v1", "amount": "1"}]`), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte(`{"records": [{"channel": "product_onsite", "product_id": "p1", "amount": "2"}]}`), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}

	records, err := ingest.LoadFiles([]string{first, second})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if _, err := ingest.LoadFiles([]string{filepath.Join(dir, "missing.json")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
