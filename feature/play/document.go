package play

import (
	"encoding/json"
	"fmt"

	"storelisting/core/jsonx"
	"storelisting/core/reconcile"
)

// Document is the desired-state document accepted by SetMetadata.
type Document struct {
	Listings []json.RawMessage `json:"listings"`
}

// ParseDocument decodes a desired-state document into records. Snapshot
// context (packageName, details) is ignored.
func ParseDocument(data []byte) ([]reconcile.Record, error) {
	var doc Document
	if err := jsonx.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Listings == nil {
		return nil, fmt.Errorf("document has no %q array", "listings")
	}
	return Schema.DecodeRecords(doc.Listings)
}

// Snapshot is the unified metadata document returned by GetMetadata.
type Snapshot struct {
	PackageName string              `json:"packageName"`
	Details     *Details            `json:"details,omitempty"`
	Listings    []map[string]string `json:"listings"`
}
