package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/transport/http/ez"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
)

// Login serves /login: form login for an access token and a token check.
type Login struct{ d Deps }

func NewLogin(d Deps) *Login { return &Login{d: d} }

func (h *Login) Priority() int { return 10 }

type loginForm struct {
	Username string `form:"username" binding:"required"` // the account email
	Password string `form:"password" binding:"required"`
}

func (h *Login) MountAPI(api *gin.RouterGroup) {
	var limited []gin.HandlerFunc
	if h.d.LoginRPS > 0 {
		limited = append(limited, mdw.RateLimitPerIP(h.d.LoginRPS, h.d.LoginBurst))
	}
	e := h.d.actions(api.Group("/login", limited...))

	ez.RegisterAction(e, ez.Action[loginForm, *domain.Token]{
		Method: http.MethodPost,
		Path:   "/",
		Binder: ez.BindForm,
		Handler: func(c *gin.Context, tx *gorm.DB, in *loginForm) (*domain.Token, error) {
			return h.d.Auth.Login(repo.NewUserRepo(tx), in.Username, in.Password)
		},
	})

	ez.RegisterAction(h.d.actions(api.Group("/login")), ez.Action[struct{}, *domain.User]{
		Method: http.MethodPost,
		Path:   "/test-token",
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.User, error) {
			return ez.CurrentUser(c)
		},
	})
}
