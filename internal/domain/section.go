package domain

import (
	"fmt"
	"strings"
)

// Section is a top-level page of the storefront.
type Section string

const (
	SectionHome     Section = "home"
	SectionCatalog  Section = "catalog"
	SectionAbout    Section = "about"
	SectionShipping Section = "shipping"
	SectionContacts Section = "contacts"
)

// DefaultSection is the section a new session starts on.
const DefaultSection = SectionHome

// Sections lists every section in navigation order.
func Sections() []Section {
	return []Section{SectionHome, SectionCatalog, SectionAbout, SectionShipping, SectionContacts}
}

// navLabels maps the Russian navigation labels to sections.
var navLabels = map[string]Section{
	"главная":  SectionHome,
	"каталог":  SectionCatalog,
	"о нас":    SectionAbout,
	"доставка": SectionShipping,
	"контакты": SectionContacts,
}

// ParseSection resolves a section name or its Russian navigation label,
// ignoring case and surrounding space.
func ParseSection(s string) (Section, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, sec := range Sections() {
		if string(sec) == want {
			return sec, nil
		}
	}
	if sec, ok := navLabels[want]; ok {
		return sec, nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

func (s Section) String() string {
	return string(s)
}
