package appstore

import (
	"storelisting/core/reconcile"
	"storelisting/core/transport"
)

// Config holds App Store Connect credentials and endpoint settings.
type Config struct {
	// IssuerID is the API key issuer from App Store Connect.
	IssuerID string `mapstructure:"issuer_id" default:""`
	// KeyID identifies the private key.
	KeyID string `mapstructure:"key_id" default:""`
	// PrivateKeyPath points to the .p8 file.
	PrivateKeyPath string `mapstructure:"private_key_path" default:""`
	// PrivateKey holds the PEM contents inline; it wins over PrivateKeyPath.
	PrivateKey string `mapstructure:"private_key" default:""`
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.appstoreconnect.apple.com"`
	// Platform selects which platform's versions are read and edited.
	Platform string `mapstructure:"platform" default:"IOS"`
	// Transport holds retry and timeout settings.
	Transport transport.Config `mapstructure:"transport"`
}

// IsConfigured reports whether credentials are present.
func (c Config) IsConfigured() bool {
	return c.IssuerID != "" && c.KeyID != "" && (c.PrivateKey != "" || c.PrivateKeyPath != "")
}

// Limits holds the maximum length in characters of each field. Zero means unlimited.
type Limits struct {
	Name              int `mapstructure:"name" default:"30"`
	Subtitle          int `mapstructure:"subtitle" default:"30"`
	PrivacyPolicyText int `mapstructure:"privacy_policy_text" default:"0"`
	Description       int `mapstructure:"description" default:"4000"`
	Keywords          int `mapstructure:"keywords" default:"100"`
	PromotionalText   int `mapstructure:"promotional_text" default:"170"`
	WhatsNew          int `mapstructure:"whats_new" default:"4000"`
}

// DefaultLimits mirrors the struct tag defaults for callers that skip config loading.
var DefaultLimits = Limits{
	Name:            30,
	Subtitle:        30,
	Description:     4000,
	Keywords:        100,
	PromotionalText: 170,
	WhatsNew:        4000,
}

// Validator returns a validator enforcing these limits.
func (l Limits) Validator() reconcile.Validator {
	return reconcile.Validator{Limits: reconcile.Limits{
		FieldName:              l.Name,
		FieldSubtitle:          l.Subtitle,
		FieldPrivacyPolicyText: l.PrivacyPolicyText,
		FieldDescription:       l.Description,
		FieldKeywords:          l.Keywords,
		FieldPromotionalText:   l.PromotionalText,
		FieldWhatsNew:          l.WhatsNew,
	}}
}
