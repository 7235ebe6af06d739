package content

import (
	"encoding/json"
	"testing"

	"lawfirm-site/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, []Key{KeyHero, KeyCredentials, KeyPracticeAreas, KeyAbout, KeyContact, KeyFooter, KeySiteSettings}, Keys())

	k := Keys()
	k[0] = "mutated"
	assert.Equal(t, KeyHero, Keys()[0], "Keys returns a copy")

	_, ok := ParseKey("practice_areas")
	assert.True(t, ok)
	_, ok = ParseKey("pricing")
	assert.False(t, ok)

	assert.Equal(t, "Hero Section", KeyHero.Label())
	assert.Equal(t, "Site Settings", KeySiteSettings.Label())
	assert.Equal(t, "pricing", Key("pricing").Label())
}

func TestDefaults_MatchSchemas(t *testing.T) {
	for _, key := range Keys() {
		t.Run(string(key), func(t *testing.T) {
			doc := Default(key)
			require.NotNil(t, doc)
			assert.Equal(t, key, doc.SectionKey())

			raw, err := Encode(doc)
			require.NoError(t, err)

			decoded, err := Decode(key, raw)
			require.NoError(t, err)
			assert.Equal(t, doc, decoded)
		})
	}
	assert.Nil(t, Default("pricing"))
}

func TestDefaults_AreFreshCopies(t *testing.T) {
	a := Default(KeyHero).(*Hero)
	a.TrustIndicators[0] = "changed"
	b := Default(KeyHero).(*Hero)
	assert.Equal(t, "Since 1983", b.TrustIndicators[0])
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		key     Key
		raw     string
		wantErr errors.ErrorCode
	}{
		{
			name: "valid footer",
			key:  KeyFooter,
			raw:  `{"tagline":"t","copyright_text":"c","disclaimer":""}`,
		},
		{
			name:    "missing field",
			key:     KeyFooter,
			raw:     `{"tagline":"t","copyright_text":"c"}`,
			wantErr: errors.ErrCodeValidationFailed,
		},
		{
			name:    "wrong type",
			key:     KeySiteSettings,
			raw:     `{"firm_name":42,"phone":"p","email":"e"}`,
			wantErr: errors.ErrCodeValidationFailed,
		},
		{
			name:    "null array",
			key:     KeyCredentials,
			raw:     `{"section_label":"l","section_title":"t","items":null}`,
			wantErr: errors.ErrCodeValidationFailed,
		},
		{
			name:    "item missing description",
			key:     KeyPracticeAreas,
			raw:     `{"section_label":"l","section_title":"t","section_description":"d","items":[{"title":"x"}]}`,
			wantErr: errors.ErrCodeValidationFailed,
		},
		{
			name:    "nested cta box checked",
			key:     KeyContact,
			raw:     `{"section_label":"","section_title":"","section_description":"","phone":"","email":"","availability":"","locations":[],"cta_box":{"title":"t"}}`,
			wantErr: errors.ErrCodeValidationFailed,
		},
		{
			name:    "not an object",
			key:     KeyHero,
			raw:     `["hero"]`,
			wantErr: errors.ErrCodeValidationFailed,
		},
		{
			name:    "malformed json",
			key:     KeyHero,
			raw:     `{"heading_line1":`,
			wantErr: errors.ErrCodeValidationFailed,
		},
		{
			name:    "unknown key",
			key:     "pricing",
			raw:     `{}`,
			wantErr: errors.ErrCodeUnknownSection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(tt.key, []byte(tt.raw))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.key, doc.SectionKey())
				return
			}
			assert.Nil(t, doc)
			assert.True(t, errors.HasCode(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDecode_TypedFields(t *testing.T) {
	raw := `{
		"section_label": "Get Started",
		"section_title": "Talk to us",
		"section_description": "",
		"phone": "555",
		"email": "a@b.c",
		"availability": "Weekdays",
		"locations": [{"name": "Chandler", "description": "Phoenix Metro"}],
		"cta_box": {"title": "Hurt?", "description": "", "benefits": ["Free review"], "cta_primary": "Go", "cta_secondary": "Call"}
	}`
	doc, err := Decode(KeyContact, []byte(raw))
	require.NoError(t, err)

	contact := doc.(*Contact)
	assert.Equal(t, "Chandler", contact.Locations[0].Name)
	assert.Equal(t, []string{"Free review"}, contact.CTABox.Benefits)
}

func TestEncode_RejectsNilSlices(t *testing.T) {
	_, err := Encode(&Credentials{SectionLabel: "l", SectionTitle: "t"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))

	raw, err := Encode(&Credentials{SectionLabel: "l", SectionTitle: "t", Items: []Item{{Title: "a", Description: "b"}}})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Len(t, m["items"], 1)
}
