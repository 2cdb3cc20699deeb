package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tally/internal/ledger"
	"tally/internal/services"
)

// batchEnvelope is the optional object form of a batch file. A bare JSON
// array of records is accepted as well.
type batchEnvelope struct {
	Records []ledger.RawRecord `json:"records"`
}

// Decode reads one batch of raw records from r. Callers are responsible for
// deduplicating records across batches; the fold is additive and will count
// a repeated record twice.
func Decode(r io.Reader) ([]ledger.RawRecord, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var records []ledger.RawRecord
	if err := json.Unmarshal(payload, &records); err == nil {
		return records, nil
	}

	var envelope batchEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, services.Wrap(services.ErrValidation, "ingest", "decode",
			"batch is neither a record array nor a records object", err)
	}
	return envelope.Records, nil
}

// LoadFile decodes a single batch file.
func LoadFile(path string) ([]ledger.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch %s: %w", path, err)
	}
	defer file.Close()

	records, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", path, err)
	}
	return records, nil
}

// LoadFiles decodes and concatenates several batch files in argument order.
// Order does not influence fold results; it only fixes skip reporting order.
func LoadFiles(paths []string) ([]ledger.RawRecord, error) {
	var out []ledger.RawRecord
	for _, path := range paths {
		records, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}
