package main

import (
	"strings"
	"testing"
)

func TestIngestAndReport(t *testing.T) {
	env := setupCLITestEnv(t)

	batch := writeBatch(t, env.baseDir, "batch.json", `[
        {"channel": "video_ads", "video_id": "v1", "title": "Walnut Desk Tour", "amount": "10.50", "views": 1200},
        {"channel": "product_onsite", "product_id": "p1", "title": "Walnut Desk", "amount": "4.25", "ordered": 3},
        {"channel": "bogus", "video_id": "v2", "amount": "1.00"}
    ]`)

	out, _, err := runCLI(t, []string{"ingest", batch}, env.configPath)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	requireContains(t, out, "Applied 2 of 3 records")
	requireContains(t, out, "Registry now tracks 2 entities")

	out, _, err = runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "Walnut Desk Tour")
	requireContains(t, out, "10.50")
	requireContains(t, out, "1,200")
	requireContains(t, out, "2 entities, 1 orphan videos, 1 orphan products")

	out, _, err = runCLI(t, []string{"report", "--channels"}, env.configPath)
	if err != nil {
		t.Fatalf("report --channels: %v", err)
	}
	requireContains(t, out, "Video Ads")
	requireContains(t, out, "Product Onsite")
	requireContains(t, out, "4.25")
}

func TestIngestIsAdditiveAcrossRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	batch := writeBatch(t, env.baseDir, "batch.json",
		`[{"channel": "video_ads", "video_id": "v1", "amount": "2.00"}]`)

	for i := 0; i < 2; i++ {
		if _, _, err := runCLI(t, []string{"ingest", batch}, env.configPath); err != nil {
			t.Fatalf("ingest run %d: %v", i+1, err)
		}
	}

	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "4.00")
	requireContains(t, out, "1 entities")
}

func TestMatchApplyAutoCommitsAndPersistsLinks(t *testing.T) {
	env := setupCLITestEnv(t)

	batch := writeBatch(t, env.baseDir, "batch.json", `[
        {"channel": "video_ads", "video_id": "v1", "title": "Walnut Desk", "amount": "10.00", "duration": "5:00"},
        {"channel": "product_onsite", "product_id": "p1", "title": "Walnut Desk!", "amount": "5.00", "duration": "301"}
    ]`)
	if _, _, err := runCLI(t, []string{"ingest", batch}, env.configPath); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	out, _, err := runCLI(t, []string{"match"}, env.configPath)
	if err != nil {
		t.Fatalf("match propose: %v", err)
	}
	requireContains(t, out, "Walnut Desk")
	requireContains(t, out, "90")
	requireContains(t, out, "Re-run with --apply-auto")

	out, _, err = runCLI(t, []string{"match", "--apply-auto"}, env.configPath)
	if err != nil {
		t.Fatalf("match --apply-auto: %v", err)
	}
	requireContains(t, out, "Committed 1 joins (1 links persisted, 0 skipped)")

	out, _, err = runCLI(t, []string{"links", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("links list: %v", err)
	}
	requireContains(t, out, "v1")
	requireContains(t, out, "p1")

	out, _, err = runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "15.00")
	requireContains(t, out, "1 entities, 0 orphan videos, 0 orphan products")
}

func TestMatchSelectCommitsOnlyChosenRows(t *testing.T) {
	env := setupCLITestEnv(t)

	// Two independent pairs; select only the first row of the ranked table.
	batch := writeBatch(t, env.baseDir, "batch.json", `[
        {"channel": "video_ads", "video_id": "v1", "title": "Alpha Chair", "amount": "1.00"},
        {"channel": "product_onsite", "product_id": "p1", "title": "Alpha Chair", "amount": "1.00"},
        {"channel": "video_ads", "video_id": "v2", "title": "Beta Lamp", "amount": "1.00"},
        {"channel": "product_onsite", "product_id": "p2", "title": "Beta Lamp", "amount": "1.00"}
    ]`)
	if _, _, err := runCLI(t, []string{"ingest", batch}, env.configPath); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	out, _, err := runCLI(t, []string{"match", "--select", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("match --select: %v", err)
	}
	requireContains(t, out, "Committed 1 joins")

	out, _, err = runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "3 entities, 1 orphan videos, 1 orphan products")
}

func TestMatchRejectsConflictingFlags(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"match", "--apply-all", "--select", "1"}, env.configPath); err == nil {
		t.Fatal("expected error for conflicting flags")
	}
}

func TestConsolidateUnknownEntities(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"consolidate", "missing-a", "missing-b"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown entities")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLinksLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"links", "add", "v1", "p1", "--name", "Walnut Desk"}, env.configPath)
	if err != nil {
		t.Fatalf("links add: %v", err)
	}
	requireContains(t, out, "Linked v1 to p1")

	out, _, err = runCLI(t, []string{"links", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("links list: %v", err)
	}
	requireContains(t, out, "Walnut Desk")

	out, _, err = runCLI(t, []string{"links", "rename", "v1", "Oak Desk"}, env.configPath)
	if err != nil {
		t.Fatalf("links rename: %v", err)
	}
	requireContains(t, out, `Renamed v1 to "Oak Desk"`)

	out, _, err = runCLI(t, []string{"links", "remove", "v1", "p1"}, env.configPath)
	if err != nil {
		t.Fatalf("links remove: %v", err)
	}
	requireContains(t, out, "Removed link v1/p1")

	out, _, err = runCLI(t, []string{"links", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("links list after remove: %v", err)
	}
	requireContains(t, out, "No links recorded")
}
