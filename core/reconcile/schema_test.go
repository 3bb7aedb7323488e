package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listingSchema = Schema{LocaleKey: "language", Fields: []Field{"title", "shortDescription", "fullDescription", "video"}}

func TestSchema_DecodeRecord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Record
		wantErr string
	}{
		{
			name:  "EmptyStringKept",
			input: `{"language":"fr-FR","shortDescription":""}`,
			want:  rec("fr-FR", "shortDescription", ""),
		},
		{
			name:  "NullIsAbsent",
			input: `{"language":"fr-FR","title":"Titre","video":null}`,
			want:  rec("fr-FR", "title", "Titre"),
		},
		{
			name:    "MissingLocale",
			input:   `{"title":"x"}`,
			wantErr: `missing "language"`,
		},
		{
			name:    "UnknownField",
			input:   `{"language":"en-US","subtitle":"x"}`,
			wantErr: `unknown field "subtitle"`,
		},
		{
			name:    "NonString",
			input:   `{"language":"en-US","title":42}`,
			wantErr: `field "title" must be a string`,
		},
		{
			name:    "FirstProblemInKeyOrder",
			input:   `{"language":"en-US","zeta":"x","title":42,"alpha":"y","video":1}`,
			wantErr: `en-US: unknown field "alpha"`,
		},
		{
			name:    "NonStringBeforeUnknown",
			input:   `{"language":"en-US","zeta":"x","fullDescription":false}`,
			wantErr: `en-US: field "fullDescription" must be a string`,
		},
		{
			name:    "NotAnObject",
			input:   `["en-US"]`,
			wantErr: "failed to parse localization",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := listingSchema.DecodeRecord([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_DecodeRecordStableError(t *testing.T) {
	input := []byte(`{"language":"en-US","m":"1","b":"2","z":"3","a":"4","q":"5"}`)
	_, first := listingSchema.DecodeRecord(input)
	require.Error(t, first)
	for i := 0; i < 20; i++ {
		_, err := listingSchema.DecodeRecord(input)
		assert.EqualError(t, err, first.Error())
	}
	assert.EqualError(t, first, `en-US: unknown field "a"`)
}

func TestSchema_DecodeRecords(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"language":"en-US","title":"A"}`),
		json.RawMessage(`{"language":"de-DE","bogus":"B"}`),
	}
	_, err := listingSchema.DecodeRecords(items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")

	records, err := listingSchema.DecodeRecords(items[:1])
	require.NoError(t, err)
	assert.Equal(t, []Record{rec("en-US", "title", "A")}, records)
}

func TestSchema_EncodeRecords(t *testing.T) {
	out := listingSchema.EncodeRecords([]Record{rec("en-US", "title", "A", "video", "")})
	assert.Equal(t, []map[string]string{{"language": "en-US", "title": "A", "video": ""}}, out)
}
