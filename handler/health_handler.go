package handler

import (
	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

const healthMessage = "Notes CRUD API with Go and MongoDB"

// HealthCheckHandler reports liveness only; it does not touch the database.
func HealthCheckHandler(c *gin.Context) {
	utils.Success(c, &utils.Response{
		Status:  utils.StatusSuccess,
		Message: healthMessage,
		Data: gin.H{
			"system": utils.GetSystemStats(),
		},
	})
}

func RouteNotFoundHandler(c *gin.Context) {
	utils.NotFound(c, "Route does not exist on the server")
}

func MethodNotAllowedHandler(c *gin.Context) {
	utils.MethodNotAllowed(c)
}
