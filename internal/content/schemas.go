package content

import "lawfirm-site/internal/common/validation"

const stringArray = `{"type": "array", "items": {"type": "string"}}`

const itemArray = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title", "description"],
		"properties": {
			"title": {"type": "string"},
			"description": {"type": "string"}
		}
	}
}`

const heroSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["heading_line1", "heading_line2", "subheading", "trust_indicators", "cta_primary", "cta_secondary", "appointment_notice"],
	"properties": {
		"heading_line1": {"type": "string"},
		"heading_line2": {"type": "string"},
		"subheading": {"type": "string"},
		"trust_indicators": ` + stringArray + `,
		"cta_primary": {"type": "string"},
		"cta_secondary": {"type": "string"},
		"appointment_notice": {"type": "string"}
	}
}`

const credentialsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["section_label", "section_title", "items"],
	"properties": {
		"section_label": {"type": "string"},
		"section_title": {"type": "string"},
		"items": ` + itemArray + `
	}
}`

const practiceAreasSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["section_label", "section_title", "section_description", "items"],
	"properties": {
		"section_label": {"type": "string"},
		"section_title": {"type": "string"},
		"section_description": {"type": "string"},
		"items": ` + itemArray + `
	}
}`

const aboutSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["section_label", "name", "title", "paragraphs", "credentials_badges", "years_experience"],
	"properties": {
		"section_label": {"type": "string"},
		"name": {"type": "string"},
		"title": {"type": "string"},
		"paragraphs": ` + stringArray + `,
		"credentials_badges": ` + stringArray + `,
		"years_experience": {"type": "string"}
	}
}`

const contactSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["section_label", "section_title", "section_description", "phone", "email", "availability", "locations", "cta_box"],
	"properties": {
		"section_label": {"type": "string"},
		"section_title": {"type": "string"},
		"section_description": {"type": "string"},
		"phone": {"type": "string"},
		"email": {"type": "string"},
		"availability": {"type": "string"},
		"locations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "description"],
				"properties": {
					"name": {"type": "string"},
					"description": {"type": "string"}
				}
			}
		},
		"cta_box": {
			"type": "object",
			"required": ["title", "description", "benefits", "cta_primary", "cta_secondary"],
			"properties": {
				"title": {"type": "string"},
				"description": {"type": "string"},
				"benefits": ` + stringArray + `,
				"cta_primary": {"type": "string"},
				"cta_secondary": {"type": "string"}
			}
		}
	}
}`

const footerSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["tagline", "copyright_text", "disclaimer"],
	"properties": {
		"tagline": {"type": "string"},
		"copyright_text": {"type": "string"},
		"disclaimer": {"type": "string"}
	}
}`

const siteSettingsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["firm_name", "phone", "email"],
	"properties": {
		"firm_name": {"type": "string"},
		"phone": {"type": "string"},
		"email": {"type": "string"}
	}
}`

var schemas = map[Key]*validation.Schema{
	KeyHero:          validation.MustCompileSchema("hero", heroSchema),
	KeyCredentials:   validation.MustCompileSchema("credentials", credentialsSchema),
	KeyPracticeAreas: validation.MustCompileSchema("practice_areas", practiceAreasSchema),
	KeyAbout:         validation.MustCompileSchema("about", aboutSchema),
	KeyContact:       validation.MustCompileSchema("contact", contactSchema),
	KeyFooter:        validation.MustCompileSchema("footer", footerSchema),
	KeySiteSettings:  validation.MustCompileSchema("site_settings", siteSettingsSchema),
}

func schemaFor(key Key) *validation.Schema {
	return schemas[key]
}
