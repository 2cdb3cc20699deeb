package registry

import (
	"encoding/json"
	"fmt"
	"io"

	"tally/internal/ledger"
)

// snapshotVersion guards against decoding snapshots written by an
// incompatible layout.
const snapshotVersion = 1

type snapshot struct {
	Version  int                    `json:"version"`
	Entities []*ledger.JoinedMetric `json:"entities"`
}

// EncodeSnapshot writes the registry's entities as JSON so a host can carry
// the in-memory registry between invocations. Decimal accumulators
// round-trip in string form without precision loss.
func (r *Registry) EncodeSnapshot(w io.Writer) error {
	snap := snapshot{
		Version:  snapshotVersion,
		Entities: r.SortedByTotal(),
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot rebuilds a registry, including its identifier indexes,
// from a snapshot previously written by EncodeSnapshot.
func DecodeSnapshot(reader io.Reader) (*Registry, error) {
	var snap snapshot
	if err := json.NewDecoder(reader).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, expected %d", snap.Version, snapshotVersion)
	}

	r := New()
	for _, entity := range snap.Entities {
		if entity == nil || entity.ID == "" {
			continue
		}
		r.entities[entity.ID] = entity
		for _, id := range entity.VideoIDs() {
			r.byVideo[id] = entity.ID
		}
		for _, id := range entity.ProductIDs() {
			r.byProduct[id] = entity.ID
		}
		if key := titleIndexKey(entity); key != "" {
			r.byTitle[key] = entity.ID
		}
	}
	return r, nil
}
