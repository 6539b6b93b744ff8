package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finage-app/finage_core/internal/core/domain"
)

// RegisterCustomValidations wires the domain enum checks into gin's binding
// validator so requests fail at the edge with a 400.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("recordkind", func(fl validator.FieldLevel) bool {
		kind := domain.RecordKind(fl.Field().String())
		return kind == domain.Expense || kind == domain.Income
	})
	v.RegisterValidation("methodcategory", func(fl validator.FieldLevel) bool {
		return domain.MethodCategory(fl.Field().String()).Valid()
	})
	v.RegisterValidation("subscriptionplan", func(fl validator.FieldLevel) bool {
		return domain.SubscriptionPlan(fl.Field().String()).Valid()
	})
}
