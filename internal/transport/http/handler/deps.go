package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/cache"
	"go-gin-gorm-blog/internal/service"
	"go-gin-gorm-blog/internal/transport/http/ez"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
)

// Deps is what every handler module needs to mount its routes.
type Deps struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Auth     *service.AuthService
	Cache    *cache.Cache
	CacheTTL time.Duration

	// LoginRPS <= 0 disables the per-IP login limiter.
	LoginRPS   rate.Limit
	LoginBurst int
}

func (d Deps) actions(g *gin.RouterGroup) ez.EZ {
	return ez.New(g, d.DB, d.Log, mdw.AuthJWT(d.Auth, d.DB))
}

func (d Deps) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
