package dto

import "github.com/finage-app/finage_core/internal/core/domain"

// CreateMethodRequest defines the data needed to register a payment method.
// BaseFee is required to be positive only when EarnsPoints is set; that
// cross-field rule lives in the registry service, not the binding layer.
type CreateMethodRequest struct {
	Name        string                `json:"name" binding:"required"`
	Category    domain.MethodCategory `json:"category" binding:"required,methodcategory"`
	EarnsPoints bool                  `json:"earnsPoints"`
	BaseFee     int64                 `json:"baseFee" binding:"min=0"`
}

// UpdateBaseFeeRequest defines the data for changing a method's point rule.
// Existing records keep the points they earned under the old rule.
type UpdateBaseFeeRequest struct {
	BaseFee int64 `json:"baseFee" binding:"required,min=1"`
}

// MethodResponse defines the data returned for a payment method.
type MethodResponse struct {
	Name        string                `json:"name"`
	Category    domain.MethodCategory `json:"category"`
	Icon        string                `json:"icon"`
	EarnsPoints bool                  `json:"earnsPoints"`
	BaseFee     int64                 `json:"baseFee"`
	Protected   bool                  `json:"protected"`
}

// ToMethodResponse converts a domain.PaymentMethod to a MethodResponse DTO.
func ToMethodResponse(m *domain.PaymentMethod) MethodResponse {
	return MethodResponse{
		Name:        m.Name,
		Category:    m.Category,
		Icon:        domain.CategoryIcon(m.Category),
		EarnsPoints: m.EarnsPoints,
		BaseFee:     m.BaseFee,
		Protected:   m.Protected,
	}
}

// ToListMethodResponse converts a slice of methods to response DTOs.
func ToListMethodResponse(methods []domain.PaymentMethod) []MethodResponse {
	res := make([]MethodResponse, len(methods))
	for i, m := range methods {
		res[i] = ToMethodResponse(&m)
	}
	return res
}

// CreateIncomeCategoryRequest defines the data for a new income category.
type CreateIncomeCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// IncomeCategoryResponse defines the data returned for an income category.
type IncomeCategoryResponse struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
}

// ToListIncomeCategoryResponse converts income categories to response DTOs.
func ToListIncomeCategoryResponse(categories []domain.IncomeCategory) []IncomeCategoryResponse {
	res := make([]IncomeCategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = IncomeCategoryResponse{Name: c.Name, Protected: c.Protected}
	}
	return res
}

// ThemeRequest carries the opaque theme preference; the core stores it
// without interpretation.
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// ThemeResponse returns the stored theme preference.
type ThemeResponse struct {
	Theme string `json:"theme"`
}
