// Package play integrates the Google Play Developer API.
//
// Store listings are one collection keyed by language. Every read and write
// happens inside an edit: reads open one and always discard it, writes
// commit it only when every listing mutation succeeded. A failed run leaves
// the live listing untouched.
//
// Requests authenticate with an OAuth2 service account (see NewTokenSource).
package play
