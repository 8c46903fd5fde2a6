package response

import "github.com/gin-gonic/gin"

// Resp is the error body. Successful responses carry the entity itself.
type Resp struct {
	Message string `json:"message"`
}

// Error builds an error body; an empty customMsg falls back to the code's default.
func Error(code int, customMsg string) Resp {
	msg := customMsg
	if msg == "" {
		msg = CodeMsgMap[code]
	}
	return Resp{Message: msg}
}

// Abort stops the chain and writes code with an error body.
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Error(code, msg))
}
