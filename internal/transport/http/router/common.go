package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-blog/internal/core/config"
	"go-gin-gorm-blog/internal/transport/http/handler"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
)

// Options configure an engine.
type Options struct {
	Mode         string
	APIPrefix    string
	AllowOrigins []string
	Limits       config.Limits
}

// middleware is the chain shared by both engines, outermost first.
func middleware(l *zap.Logger, lim config.Limits) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		mdw.Recovery(l),
	}
	if lim.RPS > 0 {
		chain = append(chain, mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst))
	}
	if lim.MaxConcurrent > 0 {
		chain = append(chain, mdw.ConcurrencyLimit(lim.MaxConcurrent))
	}
	if lim.MaxBodyBytes > 0 {
		chain = append(chain, mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}
	if lim.TimeoutSec > 0 {
		chain = append(chain, mdw.Timeout(time.Duration(lim.TimeoutSec)*time.Second))
	}
	return chain
}

// mountOps adds /health and /metrics. Health pings the database and, if set, the cache.
func mountOps(r *gin.Engine, d handler.Deps) {
	r.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		body := gin.H{"ok": 1, "db": "up"}
		status := http.StatusOK
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			body["ok"], body["db"] = 0, "down"
			status = http.StatusServiceUnavailable
		}
		if d.Cache != nil {
			body["cache"] = "up"
			if err := d.Cache.Ping(ctx); err != nil {
				body["cache"] = "down"
			}
		}
		c.JSON(status, body)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
