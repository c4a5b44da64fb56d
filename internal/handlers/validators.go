package handlers

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var ssnPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// validateSSN accepts social security numbers written as 123-45-6789.
func validateSSN(fl validator.FieldLevel) bool {
	return ssnPattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the custom binding rules used by the request DTOs.
// It is safe to call more than once.
func RegisterValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		registerValidatorsErr = v.RegisterValidation("ssn", validateSSN)
	})
	return registerValidatorsErr
}
