package response

import "github.com/gin-gonic/gin"

// ErrorResponse is the wire shape of a single-error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse is the wire shape of a field-level validation reply.
type FieldErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// SendSuccess writes data as the response body.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// SendError writes a single descriptive error message.
func SendError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// SendFieldErrors writes per-field validation errors. The request was
// rejected before any mutation took place.
func SendFieldErrors(c *gin.Context, status int, fields map[string]string) {
	c.JSON(status, FieldErrorResponse{Error: "validation failed", Fields: fields})
}
