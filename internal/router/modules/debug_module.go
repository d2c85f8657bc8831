package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stibodx/user-directory/internal/interface/middleware"
)

// DebugModule exposes the process expvar page. Gated by
// DEBUG_METRICS_ENABLED and rate-limited since the endpoint leaks
// runtime internals.
type DebugModule struct {
	rdb *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule {
	return &DebugModule{rdb: rdb}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.rdb, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
