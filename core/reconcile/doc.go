// Package reconcile is the metadata reconciliation engine shared by every backend.
//
// It reconciles a desired set of per-locale records against the records a backend
// currently holds, spread over one or more remote collections.
//
// # Architecture
//
// A pass is sequenced by the Reconciler:
//
//  1. Validator: checks every desired field against backend length limits. All
//     violations are collected; any violation aborts the pass before a single
//     network call is made.
//  2. Session (optional): backends that group mutations in an edit session get
//     one opened here. It is committed when the pass succeeds and discarded on
//     any failure or when the pass only reads.
//  3. Target.Collections: resolves the remote collections to write into. This is
//     where a backend selects its editable version and may fail with a
//     PreconditionFailure.
//  4. Classify: per collection, each desired locale becomes a CREATE or an UPDATE
//     carrying only the fields the desired record explicitly sets.
//  5. Apply: UPDATEs patch in place; CREATEs that hit a duplicate conflict are
//     re-resolved to an UPDATE against the record that already exists.
//
// Backends without a session have no batch atomicity: each call is durable on its
// own, so a failure part way leaves earlier locales applied. The Summary returned
// alongside the error lists exactly which locales were applied. Backends with a
// session have zero visible effect on failure once the discard completes.
//
// # Records
//
// A Record keeps absent fields and empty fields apart. A field missing from
// Record.Fields is never sent; a field present with "" clears the remote value.
//
// # Usage Example
//
//	r := reconcile.Reconciler{Validator: reconcile.Validator{Limits: limits}, Logger: log}
//	summary, err := r.Run(ctx, target, desired)
//	if err != nil {
//	    // summary.Created / summary.Updated list what was applied before the failure
//	}
package reconcile
