package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/core/server"
	"go-gin-gorm-blog/internal/transport/http/handler"
)

func NewAPIEngine(l *zap.Logger, d handler.Deps, o Options) *gin.Engine {
	if d.Log == nil {
		d.Log = l
	}
	r := server.NewRouter(l, server.Options{
		Name:         "api",
		Mode:         o.Mode,
		AllowOrigins: o.AllowOrigins,
		Middleware:   middleware(l, o.Limits),
	})
	mountOps(r, d)

	prefix := o.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	reg := &Registry{}
	reg.Register(
		handler.NewLogin(d),
		handler.NewUser(d),
		handler.NewCategory(d),
		handler.NewTag(d),
		handler.NewPost(d),
	)
	reg.MountAPI(r.Group(prefix))
	return r
}
