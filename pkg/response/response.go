package response

import "github.com/gin-gonic/gin"

// Envelope is the standard Bloggy error/status body: {statusCode, message}.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Created is the body returned by create operations: {statusCode, payload}.
type Created struct {
	StatusCode int `json:"statusCode"`
	Payload    any `json:"payload"`
}

// Login is the body returned by a successful login.
type Login struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Token      string `json:"token"`
}

// Invalid is the body returned when request validation fails.
type Invalid struct {
	StatusCode int `json:"statusCode"`
	Errors     any `json:"errors"`
}

// Message writes a {statusCode, message} body with the given status.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{StatusCode: status, Message: message})
}

// AbortMessage writes a {statusCode, message} body and aborts the handler chain.
func AbortMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{StatusCode: status, Message: message})
}

// Payload writes a {statusCode, payload} body with the given status.
func Payload(c *gin.Context, status int, payload any) {
	c.JSON(status, Created{StatusCode: status, Payload: payload})
}

// ValidationFailed writes a 400 {statusCode, errors} body.
func ValidationFailed(c *gin.Context, details any) {
	c.JSON(400, Invalid{StatusCode: 400, Errors: details})
}

// InternalError writes the generic 500 body; the cause is only logged server-side.
func InternalError(c *gin.Context) {
	Message(c, 500, "Internal Server Error")
}
