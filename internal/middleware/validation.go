package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

// ContextValidatedBody holds the body decoded by ValidateRequest
const ContextValidatedBody = "validatedBody"

var validate = validation.New()

// ValidateRequest decodes the JSON body into a fresh T, validates it and
// stores it for the handler. Invalid bodies are answered with 400.
func ValidateRequest[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		body := new(T)
		if err := json.NewDecoder(c.Request.Body).Decode(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}

		if err := validate.Struct(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}

		c.Set(ContextValidatedBody, body)
		c.Next()
	}
}

// ValidatedBody returns the body stored by ValidateRequest
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	value, exists := c.Get(ContextValidatedBody)
	if !exists {
		return nil, false
	}
	body, ok := value.(*T)
	return body, ok
}
