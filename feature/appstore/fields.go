package appstore

import "storelisting/core/reconcile"

// App info localization fields.
const (
	FieldName              reconcile.Field = "name"
	FieldSubtitle          reconcile.Field = "subtitle"
	FieldPrivacyPolicyURL  reconcile.Field = "privacyPolicyUrl"
	FieldPrivacyChoicesURL reconcile.Field = "privacyChoicesUrl"
	FieldPrivacyPolicyText reconcile.Field = "privacyPolicyText"
)

// App store version localization fields.
const (
	FieldDescription     reconcile.Field = "description"
	FieldKeywords        reconcile.Field = "keywords"
	FieldMarketingURL    reconcile.Field = "marketingUrl"
	FieldPromotionalText reconcile.Field = "promotionalText"
	FieldSupportURL      reconcile.Field = "supportUrl"
	FieldWhatsNew        reconcile.Field = "whatsNew"
)

var (
	appInfoFields = []reconcile.Field{
		FieldName, FieldSubtitle, FieldPrivacyPolicyURL, FieldPrivacyChoicesURL, FieldPrivacyPolicyText,
	}
	versionFields = []reconcile.Field{
		FieldDescription, FieldKeywords, FieldMarketingURL, FieldPromotionalText, FieldSupportURL, FieldWhatsNew,
	}
)

// States is the App Store Connect lifecycle vocabulary shared by app infos and versions.
var States = reconcile.StateSet{
	Live: "READY_FOR_SALE",
	Editable: []string{
		"PREPARE_FOR_SUBMISSION",
		"DEVELOPER_REJECTED",
		"REJECTED",
		"METADATA_REJECTED",
		"WAITING_FOR_REVIEW",
		"INVALID_BINARY",
	},
}

// infoStates maps the AppInfo state attribute onto the States vocabulary.
// Only the live state is spelled differently; the editable states match.
var infoStates = map[string]string{
	"READY_FOR_DISTRIBUTION": "READY_FOR_SALE",
}

// infoState returns an app info's state, preferring appStoreState.
func infoState(appStoreState, state string) string {
	if appStoreState != "" {
		return appStoreState
	}
	if mapped, ok := infoStates[state]; ok {
		return mapped
	}
	return state
}

// Schema describes the localizations array of App Store documents.
var Schema = reconcile.Schema{
	LocaleKey: "locale",
	Fields:    append(append([]reconcile.Field{}, appInfoFields...), versionFields...),
}
