package play

import "storelisting/core/reconcile"

// Store listing fields.
const (
	FieldTitle            reconcile.Field = "title"
	FieldShortDescription reconcile.Field = "shortDescription"
	FieldFullDescription  reconcile.Field = "fullDescription"
	FieldVideo            reconcile.Field = "video"
)

var listingFields = []reconcile.Field{FieldTitle, FieldShortDescription, FieldFullDescription, FieldVideo}

// Schema describes the listings array of Play documents.
var Schema = reconcile.Schema{LocaleKey: "language", Fields: listingFields}
