package play

import (
	"storelisting/core/reconcile"
	"storelisting/core/transport"
)

// Config holds Google Play Developer API credentials and endpoint settings.
type Config struct {
	// ServiceAccountFile points to the service account JSON key.
	ServiceAccountFile string `mapstructure:"service_account_file" default:""`
	// ServiceAccountJSON holds the key inline; it wins over ServiceAccountFile.
	ServiceAccountJSON string `mapstructure:"service_account_json" default:""`
	// BaseURL is the androidpublisher v3 root.
	BaseURL string `mapstructure:"base_url" default:"https://androidpublisher.googleapis.com/androidpublisher/v3"`
	// Transport holds retry and timeout settings.
	Transport transport.Config `mapstructure:"transport"`
}

// IsConfigured reports whether credentials are present.
func (c Config) IsConfigured() bool {
	return c.ServiceAccountFile != "" || c.ServiceAccountJSON != ""
}

// Limits holds the maximum length in characters of each field. Zero means unlimited.
type Limits struct {
	Title            int `mapstructure:"title" default:"30"`
	ShortDescription int `mapstructure:"short_description" default:"80"`
	FullDescription  int `mapstructure:"full_description" default:"4000"`
}

// DefaultLimits mirrors the struct tag defaults.
var DefaultLimits = Limits{Title: 30, ShortDescription: 80, FullDescription: 4000}

// Validator returns a validator enforcing these limits.
func (l Limits) Validator() reconcile.Validator {
	return reconcile.Validator{Limits: reconcile.Limits{
		FieldTitle:            l.Title,
		FieldShortDescription: l.ShortDescription,
		FieldFullDescription:  l.FullDescription,
	}}
}
