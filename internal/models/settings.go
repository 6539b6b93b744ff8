package models

import "github.com/finage-app/finage_core/internal/core/domain"

// Settings store keys. Each key holds one JSON blob.
const (
	SettingsKeyPaymentMethods   = "payment_methods"
	SettingsKeyIncomeCategories = "income_categories"
	SettingsKeyTheme            = "theme"
)

// PaymentMethodBlob is the serialized form of a method definition in the
// settings store. Entries that fail Valid on load are dropped rather than
// failing the whole load.
type PaymentMethodBlob struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	EarnsPoints bool   `json:"earnsPoints"`
	BaseFee     int64  `json:"baseFee"`
	Protected   bool   `json:"protected"`
	Position    int    `json:"position"`
}

// Valid checks the stored entry against the schema: non-empty name, known
// category, and a positive base fee whenever the method earns points.
func (b PaymentMethodBlob) Valid() bool {
	if b.Name == "" {
		return false
	}
	if !domain.MethodCategory(b.Category).Valid() {
		return false
	}
	if b.EarnsPoints && b.BaseFee <= 0 {
		return false
	}
	return true
}

// ToDomain converts the blob to its domain representation.
func (b PaymentMethodBlob) ToDomain() domain.PaymentMethod {
	return domain.PaymentMethod{
		Name:        b.Name,
		Category:    domain.MethodCategory(b.Category),
		EarnsPoints: b.EarnsPoints,
		BaseFee:     b.BaseFee,
		Protected:   b.Protected,
		Position:    b.Position,
	}
}

// FromDomainMethod converts a domain method to its stored form.
func FromDomainMethod(m domain.PaymentMethod) PaymentMethodBlob {
	return PaymentMethodBlob{
		Name:        m.Name,
		Category:    string(m.Category),
		EarnsPoints: m.EarnsPoints,
		BaseFee:     m.BaseFee,
		Protected:   m.Protected,
		Position:    m.Position,
	}
}

// IncomeCategoryBlob is the serialized form of an income category.
type IncomeCategoryBlob struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
	Position  int    `json:"position"`
}

// Valid checks the stored entry has a name.
func (b IncomeCategoryBlob) Valid() bool {
	return b.Name != ""
}

// ToDomain converts the blob to its domain representation.
func (b IncomeCategoryBlob) ToDomain() domain.IncomeCategory {
	return domain.IncomeCategory{Name: b.Name, Protected: b.Protected, Position: b.Position}
}

// FromDomainIncomeCategory converts a domain income category to its stored form.
func FromDomainIncomeCategory(c domain.IncomeCategory) IncomeCategoryBlob {
	return IncomeCategoryBlob{Name: c.Name, Protected: c.Protected, Position: c.Position}
}
