// Package journal records reconciliation runs in a SQL database.
//
// Each run stores its backend, target app, flags and timing, plus one
// outcome row per created, updated, planned or failed locale. The journal is
// an audit log: reconciliation never reads it back.
//
// Tables are auto-migrated unless disabled, in which case Check verifies the
// existing schema against the models.
package journal
