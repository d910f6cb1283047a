package delivery

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Code    string      `json:"Code,omitempty"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, err error) {
	statusCode, code, message := httpStatusFromGRPC(toStatus(err))
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
		Code:    code,
	})
}
