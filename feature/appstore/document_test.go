package appstore_test

import (
	"testing"

	"storelisting/feature/appstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Run("SnapshotRoundTrip", func(t *testing.T) {
		doc := `{
		  "app": {"id": "123", "name": "Demo"},
		  "version": {"id": "v1", "state": "READY_FOR_SALE"},
		  "localizations": [
		    {"locale": "fr-FR", "keywords": "", "name": "Démo"},
		    {"locale": "en-US", "whatsNew": null}
		  ]
		}`
		records, err := appstore.ParseDocument([]byte(doc))
		require.NoError(t, err)
		require.Len(t, records, 2)

		v, ok := records[0].Get(appstore.FieldKeywords)
		assert.True(t, ok)
		assert.Equal(t, "", v)
		_, ok = records[1].Get(appstore.FieldWhatsNew)
		assert.False(t, ok)
	})

	t.Run("MissingArray", func(t *testing.T) {
		_, err := appstore.ParseDocument([]byte(`{"listings": []}`))
		assert.ErrorContains(t, err, `no "localizations" array`)
	})

	t.Run("PlayField", func(t *testing.T) {
		_, err := appstore.ParseDocument([]byte(`{"localizations": [{"locale": "en-US", "title": "x"}]}`))
		assert.ErrorContains(t, err, `unknown field "title"`)
	})
}
