package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a positive int64 path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid %s", name), map[string]interface{}{
			name: fmt.Sprintf("must be a positive integer, got %q", raw),
		})
	}
	return id, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching q as a literal substring
func ContainsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
