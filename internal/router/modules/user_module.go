package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stibodx/user-directory/internal/container"
	handlers "github.com/stibodx/user-directory/internal/interface/http"
	"github.com/stibodx/user-directory/internal/interface/middleware"
)

// UserModule wires the user directory endpoints.
// POST   /api/users            create (rate limited per IP)
// GET    /api/users            paginated listing (page, size)
// GET    /api/users/all        full listing
// GET    /api/users/search     Elasticsearch search (q, size)
// GET    /api/users/email/:email
// GET    /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Creates are the only write path; keep them per-IP limited while
	// letting internal callers through.
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	users := rg.Group("/users")
	{
		users.POST("", createLimiter, m.Handler.Create)
		users.GET("", m.Handler.List)
		users.GET("/all", m.Handler.ListAll)
		users.GET("/search", m.Handler.Search)
		users.GET("/email/:email", m.Handler.GetByEmail)
		users.GET("/:id", m.Handler.GetByID)
	}
}
