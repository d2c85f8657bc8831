package router

import "github.com/gin-gonic/gin"

// Module is a self-contained feature area (users, debug) that mounts
// its own routes on the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
