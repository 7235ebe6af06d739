package content

// Default returns a fresh copy of key's compiled-in document, or nil for an
// unknown key.
func Default(key Key) Document {
	switch key {
	case KeyHero:
		return &Hero{
			HeadingLine1:      "Commercial Trucking &",
			HeadingLine2:      "Severe Injury Attorneys",
			Subheading:        "Over 40 years of experience fighting for victims of catastrophic accidents.",
			TrustIndicators:   []string{"Since 1983", "Academy of Truck Accident Attorneys", "Keenan Trial Institute Graduate"},
			CTAPrimary:        "Request Free Consultation",
			CTASecondary:      "Call 928.369.1777",
			AppointmentNotice: "By Appointment Only - Offices in Pinetop and Chandler, Arizona",
		}
	case KeyCredentials:
		return &Credentials{
			SectionLabel: "Why Choose Us",
			SectionTitle: "Credentials That Matter",
			Items:        []Item{},
		}
	case KeyPracticeAreas:
		return &PracticeAreas{
			SectionLabel: "Our Focus",
			SectionTitle: "Severe Injury & Wrongful Death Cases",
			Items:        []Item{},
		}
	case KeyAbout:
		return &About{
			SectionLabel:      "Meet Your Attorney",
			Name:              "Peter Gorski",
			Title:             "Attorney at Law, Since 1983",
			Paragraphs:        []string{},
			CredentialsBadges: []string{},
			YearsExperience:   "40+",
		}
	case KeyContact:
		return &Contact{
			SectionLabel: "Get Started",
			SectionTitle: "Request Your Free Consultation",
			Phone:        "928.369.1777",
			Email:        "peter@petergorski.com",
			Availability: "By Appointment Only",
			Locations:    []Location{},
			CTABox: CTABox{
				Title:        "Injured in a Truck Accident?",
				Benefits:     []string{},
				CTAPrimary:   "Start Your Case Review",
				CTASecondary: "Call Now",
			},
		}
	case KeyFooter:
		return &Footer{
			Tagline:       "Strong on Results!!",
			CopyrightText: "Gorski Injury Law. All rights reserved.",
		}
	case KeySiteSettings:
		return &SiteSettings{
			FirmName: "Gorski Injury Law",
			Phone:    "928.369.1777",
			Email:    "peter@petergorski.com",
		}
	default:
		return nil
	}
}
