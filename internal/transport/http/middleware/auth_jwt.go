package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/service"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

const keyCurrentUser = "currentUser"

// AuthJWT resolves the bearer token to a user and stores it on the context.
// A missing or invalid token aborts with 401, a token for a deleted user with 404.
func AuthJWT(authSvc *service.AuthService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(ah, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Header("WWW-Authenticate", "Bearer")
			resp.Abort(c, resp.CodeUnauthorized, "not authenticated")
			return
		}
		users := repo.NewUserRepo(db.WithContext(c.Request.Context()))
		u, err := authSvc.Resolve(users, strings.TrimSpace(token))
		if err != nil {
			switch domain.KindOf(err) {
			case domain.KindUnauthorized:
				c.Header("WWW-Authenticate", "Bearer")
				resp.Abort(c, resp.CodeUnauthorized, err.Error())
			case domain.KindNotFound:
				resp.Abort(c, resp.CodeNotFound, err.Error())
			default:
				_ = c.Error(err)
				resp.Abort(c, resp.CodeServerError, err.Error())
			}
			return
		}
		c.Set(keyCurrentUser, u)
		c.Next()
	}
}

// RequireAdmin must run after AuthJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			resp.Abort(c, resp.CodeUnauthorized, "")
			return
		}
		if !u.IsAdmin {
			resp.Abort(c, resp.CodeForbidden, "admin privileges required")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthJWT.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(keyCurrentUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}
