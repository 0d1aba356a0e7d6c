package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// Envelope is the common response contract: {ok, data} on success and
// {ok, errors} on failure, where errors is a message or an array of messages.
type Envelope struct {
	OK     bool        `json:"ok"`
	Data   interface{} `json:"data,omitempty"`
	Errors interface{} `json:"errors,omitempty"`
}

// OK sends a 200 success response.
func OK(c *gin.Context, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, Envelope{OK: true, Data: data})
}

// Error sends an error response converting the error to the common envelope.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	var errs interface{} = appErr.Message
	if len(appErr.Fields) > 0 {
		errs = appErr.Fields
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{OK: false, Errors: errs})
}
