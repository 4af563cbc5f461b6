package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/storesync/backend/internal/interfaces/http/dto"
)

// LicenseChecker reports whether the installation is currently licensed.
type LicenseChecker interface {
	IsLicensed(ctx context.Context) bool
}

// LicenseGate rejects requests to gated routes when the license check
// fails. The checker itself fails open on transport problems, so only a
// definite negative verdict blocks traffic.
func LicenseGate(checker LicenseChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.IsLicensed(c.Request.Context()) {
			c.AbortWithStatusJSON(
				dto.GetHTTPStatus(dto.ErrCodeUnlicensed),
				dto.NewErrorResponse(dto.ErrCodeUnlicensed, "This installation is not licensed"),
			)
			return
		}
		c.Next()
	}
}
