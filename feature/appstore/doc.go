// Package appstore integrates App Store Connect.
//
// Localized text lives in two collections with disjoint fields:
// appInfoLocalizations (name, subtitle, privacy URLs) owned by an app info,
// and appStoreVersionLocalizations (description, keywords, what's new, ...)
// owned by an app store version. Reads merge both into one record per locale.
//
// # Versions
//
// App infos and versions carry an App Store state. READY_FOR_SALE is live;
// the draft-like states in States are editable. App infos that only report
// the newer state attribute have READY_FOR_DISTRIBUTION read as live. Reads prefer the requested
// category and fall back to the other. Writes require an editable app info
// or version for every collection the desired records touch.
//
// # Writes
//
// There is no session: every POST and PATCH is durable on its own. A failed
// run is not rolled back, and the returned summary lists what was applied.
// A CREATE rejected as a duplicate is re-resolved into an UPDATE.
//
// # Authentication
//
// Requests carry an ES256 JWT signed with the team's .p8 key (see NewTokenSource).
package appstore
