package elemeta

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/bahrom04-lab/element-desktop-leveldb/elemeta_errors"
)

// ExportJSON serializes a completed record. Output is deterministic:
// struct fields in declaration order, raw-map keys lexicographic
// (encoding/json sorts map keys), absent scalars as explicit null.
func ExportJSON(rec *MetadataRecord) ([]byte, error) {
	if rec == nil || rec.Raw == nil {
		return nil, fmt.Errorf("%w: record not produced by a scan", elemeta_errors.ErrSerialization)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", elemeta_errors.ErrSerialization, err)
	}
	return append(data, '\n'), nil
}

// Fingerprint is a fast content hash of an exported document, for
// checking diff-stability across runs. Not a chain-of-custody hash.
func Fingerprint(doc []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(doc))
}
