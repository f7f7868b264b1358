package validation

import (
	"fmt"
	"sync"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagName is the struct tag gin binding reads rules from
const TagName = "binding"

var (
	registerOnce sync.Once
	registerErr  error
)

// Rules are the custom tags understood by request DTOs
var Rules = map[string]validator.Func{
	"semester": func(fl validator.FieldLevel) bool {
		return models.Semester(fl.Field().String()).IsValid()
	},
	"period": func(fl validator.FieldLevel) bool {
		return models.ValidPeriod(int(fl.Field().Int()))
	},
	"sex": func(fl validator.FieldLevel) bool {
		return models.Sex(fl.Field().String()).IsValid()
	},
}

// Register installs Rules on v
func Register(v *validator.Validate) error {
	for tag, fn := range Rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}

// New returns a standalone validator that reads binding tags and knows Rules
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName(TagName)
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterGinValidators installs Rules on gin's default binding engine.
// Safe to call more than once.
func RegisterGinValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}
