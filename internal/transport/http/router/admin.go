package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/core/server"
	"go-gin-gorm-blog/internal/transport/http/handler"
)

// NewAdminEngine serves /admin/v1; every route there requires an admin user.
func NewAdminEngine(l *zap.Logger, d handler.Deps, o Options) *gin.Engine {
	if d.Log == nil {
		d.Log = l
	}
	r := server.NewRouter(l, server.Options{
		Name:         "admin",
		Mode:         o.Mode,
		AllowOrigins: o.AllowOrigins,
		Middleware:   middleware(l, o.Limits),
	})
	mountOps(r, d)

	reg := &Registry{}
	reg.Register(handler.NewAdmin(d))
	reg.MountAdmin(r.Group("/admin/v1"))
	return r
}
