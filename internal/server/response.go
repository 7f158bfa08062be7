package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docfill/internal/common"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	code := ""
	var ae *common.AppError
	if errors.As(err, &ae) {
		code = ae.Code
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: code}})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func respondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
