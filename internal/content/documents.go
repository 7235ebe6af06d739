package content

import (
	"encoding/json"
	"fmt"

	"lawfirm-site/internal/common/errors"
)

// Document is the typed body of one section.
type Document interface {
	SectionKey() Key
}

type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Location struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Hero struct {
	HeadingLine1      string   `json:"heading_line1"`
	HeadingLine2      string   `json:"heading_line2"`
	Subheading        string   `json:"subheading"`
	TrustIndicators   []string `json:"trust_indicators"`
	CTAPrimary        string   `json:"cta_primary"`
	CTASecondary      string   `json:"cta_secondary"`
	AppointmentNotice string   `json:"appointment_notice"`
}

type Credentials struct {
	SectionLabel string `json:"section_label"`
	SectionTitle string `json:"section_title"`
	Items        []Item `json:"items"`
}

type PracticeAreas struct {
	SectionLabel       string `json:"section_label"`
	SectionTitle       string `json:"section_title"`
	SectionDescription string `json:"section_description"`
	Items              []Item `json:"items"`
}

type About struct {
	SectionLabel      string   `json:"section_label"`
	Name              string   `json:"name"`
	Title             string   `json:"title"`
	Paragraphs        []string `json:"paragraphs"`
	CredentialsBadges []string `json:"credentials_badges"`
	YearsExperience   string   `json:"years_experience"`
}

type CTABox struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Benefits     []string `json:"benefits"`
	CTAPrimary   string   `json:"cta_primary"`
	CTASecondary string   `json:"cta_secondary"`
}

type Contact struct {
	SectionLabel       string     `json:"section_label"`
	SectionTitle       string     `json:"section_title"`
	SectionDescription string     `json:"section_description"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Availability       string     `json:"availability"`
	Locations          []Location `json:"locations"`
	CTABox             CTABox     `json:"cta_box"`
}

type Footer struct {
	Tagline       string `json:"tagline"`
	CopyrightText string `json:"copyright_text"`
	Disclaimer    string `json:"disclaimer"`
}

type SiteSettings struct {
	FirmName string `json:"firm_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (*Hero) SectionKey() Key          { return KeyHero }
func (*Credentials) SectionKey() Key   { return KeyCredentials }
func (*PracticeAreas) SectionKey() Key { return KeyPracticeAreas }
func (*About) SectionKey() Key         { return KeyAbout }
func (*Contact) SectionKey() Key       { return KeyContact }
func (*Footer) SectionKey() Key        { return KeyFooter }
func (*SiteSettings) SectionKey() Key  { return KeySiteSettings }

func newDocument(key Key) (Document, bool) {
	switch key {
	case KeyHero:
		return &Hero{}, true
	case KeyCredentials:
		return &Credentials{}, true
	case KeyPracticeAreas:
		return &PracticeAreas{}, true
	case KeyAbout:
		return &About{}, true
	case KeyContact:
		return &Contact{}, true
	case KeyFooter:
		return &Footer{}, true
	case KeySiteSettings:
		return &SiteSettings{}, true
	default:
		return nil, false
	}
}

// Decode validates raw against key's schema and decodes it into the key's
// document type. A schema mismatch is a VALIDATION_FAILED error.
func Decode(key Key, raw []byte) (Document, error) {
	doc, ok := newDocument(key)
	if !ok {
		return nil, errors.NewUnknownSectionError(string(key))
	}

	result, err := schemaFor(key).ValidateJSON(raw)
	if err != nil {
		return nil, errors.NewValidationError(string(key), []string{err.Error()})
	}
	if !result.Valid {
		return nil, errors.NewValidationError(string(key), result.GetErrorMessages())
	}

	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, errors.NewValidationError(string(key), []string{err.Error()})
	}
	return doc, nil
}

// Encode marshals doc after checking it against its schema.
func Encode(doc Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", doc.SectionKey(), err)
	}
	if _, err := Decode(doc.SectionKey(), raw); err != nil {
		return nil, err
	}
	return raw, nil
}
