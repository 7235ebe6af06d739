// Package content models the editable sections of the public site and
// resolves each one to either its stored document or a compiled-in default.
package content

// Key identifies one editable section. The set is closed.
type Key string

const (
	KeyHero          Key = "hero"
	KeyCredentials   Key = "credentials"
	KeyPracticeAreas Key = "practice_areas"
	KeyAbout         Key = "about"
	KeyContact       Key = "contact"
	KeyFooter        Key = "footer"
	KeySiteSettings  Key = "site_settings"
)

var keys = []Key{
	KeyHero,
	KeyCredentials,
	KeyPracticeAreas,
	KeyAbout,
	KeyContact,
	KeyFooter,
	KeySiteSettings,
}

var labels = map[Key]string{
	KeyHero:          "Hero Section",
	KeyCredentials:   "Credentials",
	KeyPracticeAreas: "Practice Areas",
	KeyAbout:         "About Section",
	KeyContact:       "Contact Section",
	KeyFooter:        "Footer",
	KeySiteSettings:  "Site Settings",
}

// Keys returns every section key in admin display order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// ParseKey reports whether s names a known section.
func ParseKey(s string) (Key, bool) {
	k := Key(s)
	_, ok := labels[k]
	return k, ok
}

// Label is the admin panel title for k.
func (k Key) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}
