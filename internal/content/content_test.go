package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinylvault/storefront/internal/domain"
)

func TestFor_EverySectionHasTitle(t *testing.T) {
	for _, s := range domain.Sections() {
		p := For(s)
		assert.Equal(t, s, p.Section)
		assert.NotEmpty(t, p.Title, s)
	}
}

func TestFor_Shipping(t *testing.T) {
	p := For(domain.SectionShipping)
	require.Len(t, p.Shipping, 3)
	assert.Equal(t, int64(500), p.Shipping[0].PriceFrom)
	assert.Equal(t, int64(600), p.Shipping[1].PriceFrom)
	assert.Equal(t, int64(0), p.Shipping[2].PriceFrom)
}

func TestFor_Contacts(t *testing.T) {
	p := For(domain.SectionContacts)
	require.NotNil(t, p.Contacts)
	assert.Equal(t, "info@vinylvault.ru", p.Contacts.Email)
	assert.Equal(t, "+7 (495) 123-45-67", p.Contacts.Phone)
	assert.Equal(t, "Москва, ул. Винильная, д. 33", p.Contacts.Address)
}

func TestFor_RussianCopy(t *testing.T) {
	assert.Equal(t, "Каталог", For(domain.SectionCatalog).Title)
	assert.Equal(t, "Доставка", For(domain.SectionShipping).Title)
	assert.Equal(t, "По Москве", For(domain.SectionShipping).Shipping[0].Name)
	assert.Equal(t, "Самовывоз", For(domain.SectionShipping).Shipping[2].Name)
}

func TestFor_UnknownFallsBackToHome(t *testing.T) {
	assert.Equal(t, domain.SectionHome, For(domain.Section("checkout")).Section)
}

func TestFor_ReturnsCopies(t *testing.T) {
	p := For(domain.SectionContacts)
	p.Contacts.Email = "changed"

	a := For(domain.SectionAbout)
	a.Paragraphs[0] = "changed"

	assert.Equal(t, "info@vinylvault.ru", For(domain.SectionContacts).Contacts.Email)
	assert.NotEqual(t, "changed", For(domain.SectionAbout).Paragraphs[0])
}
