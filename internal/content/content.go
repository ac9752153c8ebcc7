// Package content holds the fixed copy shown on each storefront section.
package content

import "github.com/vinylvault/storefront/internal/domain"

// ShippingOption is one delivery method. PriceFrom is in minor units; zero
// means free.
type ShippingOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceFrom   int64  `json:"price_from"`
}

// Contacts is the shop's address block.
type Contacts struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Page is the static content of one section.
type Page struct {
	Section    domain.Section   `json:"section"`
	Title      string           `json:"title"`
	Paragraphs []string         `json:"paragraphs,omitempty"`
	Shipping   []ShippingOption `json:"shipping,omitempty"`
	Contacts   *Contacts        `json:"contacts,omitempty"`
}

// Shop copy is Russian; prices are in rubles.
var pages = map[domain.Section]Page{
	domain.SectionHome: {
		Title: "Коллекция винтажных пластинок",
		Paragraphs: []string{
			"Откройте для себя легендарные альбомы 60-х, 70-х и 80-х годов",
		},
	},
	domain.SectionCatalog: {
		Title: "Каталог",
	},
	domain.SectionAbout: {
		Title: "О нас",
		Paragraphs: []string{
			"Vinyl Vault — это больше, чем просто магазин. Мы храним музыкальную историю с 1975 года.",
			"Наша коллекция включает редкие и культовые альбомы, которые определили целые поколения. Каждая пластинка тщательно отобрана и проверена нашими экспертами.",
			"Мы верим, что винил — это не просто носитель музыки, а способ прикоснуться к истории.",
		},
	},
	domain.SectionShipping: {
		Title: "Доставка",
		Shipping: []ShippingOption{
			{Name: "По Москве", Description: "Курьерская доставка 1-2 дня", PriceFrom: 500},
			{Name: "По России", Description: "СДЭК, Почта России", PriceFrom: 600},
			{Name: "Самовывоз", Description: "Бесплатно из нашего шоурума", PriceFrom: 0},
		},
	},
	domain.SectionContacts: {
		Title: "Контакты",
		Contacts: &Contacts{
			Address: "Москва, ул. Винильная, д. 33",
			Phone:   "+7 (495) 123-45-67",
			Email:   "info@vinylvault.ru",
		},
	},
}

// For returns the content of section. Unknown sections get the home page.
func For(section domain.Section) Page {
	p, ok := pages[section]
	if !ok {
		section = domain.DefaultSection
		p = pages[section]
	}
	p.Section = section
	p.Paragraphs = append([]string(nil), p.Paragraphs...)
	p.Shipping = append([]ShippingOption(nil), p.Shipping...)
	if p.Contacts != nil {
		c := *p.Contacts
		p.Contacts = &c
	}
	return p
}
