package appstore

import (
	"encoding/json"
	"fmt"

	"storelisting/core/jsonx"
	"storelisting/core/reconcile"
)

// Document is the desired-state document accepted by SetMetadata.
type Document struct {
	Localizations []json.RawMessage `json:"localizations"`
}

// ParseDocument decodes a desired-state document into records. Read-only
// snapshot context (app, versions) is ignored, so a snapshot can be edited
// and fed back.
func ParseDocument(data []byte) ([]reconcile.Record, error) {
	var doc Document
	if err := jsonx.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Localizations == nil {
		return nil, fmt.Errorf("document has no %q array", "localizations")
	}
	return Schema.DecodeRecords(doc.Localizations)
}

// VersionSummary describes the version or app info a snapshot was read from.
type VersionSummary struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
	State   string `json:"state"`
}

func summarize(v *reconcile.Version) *VersionSummary {
	if v == nil {
		return nil
	}
	return &VersionSummary{ID: v.ID, Version: v.Label, State: v.State}
}

// Snapshot is the unified metadata document returned by GetMetadata.
type Snapshot struct {
	App           App                 `json:"app"`
	AppInfo       *VersionSummary     `json:"appInfo,omitempty"`
	Version       *VersionSummary     `json:"version,omitempty"`
	Localizations []map[string]string `json:"localizations"`
}
