// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"stockfolio/internal/models"
)

// tickerRegex accepts exchange tickers plus the punctuation Yahoo uses for
// indices, currencies and share classes (^GSPC, EURUSD=X, BRK-B, RY.TO).
var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9.\-^=]{1,20}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("lifecycle_operation", validateLifecycleOperation)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateLifecycleOperation(fl validator.FieldLevel) bool {
	return models.Operation(fl.Field().String()).Valid()
}
