package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the success half of the envelope every endpoint returns.
type Response[T any] struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func ok[T any](c *gin.Context, message string, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// okEmpty answers with "data": null.
func okEmpty(c *gin.Context, message string) {
	ok[any](c, message, nil)
}
