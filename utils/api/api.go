package api

import "github.com/gin-gonic/gin"

// ErrorCode is a stable machine-readable error kind, returned alongside the
// human-readable message so clients never have to parse error strings.
type ErrorCode string

const (
	CodeValidation          ErrorCode = "VALIDATION"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeUnauthenticated     ErrorCode = "UNAUTHENTICATED"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodeInvalidState        ErrorCode = "INVALID_STATE"
	CodePolicyViolation     ErrorCode = "POLICY_VIOLATION"
	CodeServerMisconfigured ErrorCode = "SERVER_MISCONFIGURED"
	CodeUpstream            ErrorCode = "UPSTREAM"
	CodePersistence         ErrorCode = "PERSISTENCE"
)

// Fail writes the uniform error envelope {success:false, error, code}.
func Fail(c *gin.Context, status int, code ErrorCode, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
		"code":    code,
	})
}
