package handlers

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator engine.
// It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = v.RegisterValidation("transaction_type", validateTransactionType)
	})
	return err
}

// validateTransactionType rejects blank tags only. Any other tag, known or
// not, is accepted and stored verbatim.
func validateTransactionType(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
