package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/service"
	"go-gin-gorm-blog/internal/transport/http/ez"
)

// User serves /users. Registration goes through the user service policy.
type User struct{ d Deps }

func NewUser(d Deps) *User { return &User{d: d} }

func (h *User) Priority() int { return 20 }

func users(tx *gorm.DB) *service.UserService { return service.NewUserService(repo.NewUserRepo(tx)) }

func (h *User) MountAPI(api *gin.RouterGroup) {
	e := h.d.actions(api.Group("/users"))
	log := h.d.log()

	ez.RegisterAction(e, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/",
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]domain.User, error) {
			return users(tx).List()
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/test-token",
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.User, error) {
			return ez.CurrentUser(c)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.UserCreate, *domain.User]{
		Method: http.MethodPost,
		Path:   "/create",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *domain.UserCreate) (*domain.User, error) {
			u, err := users(tx).Register(*in)
			if err != nil {
				log.Warn("register rejected", zap.String("email", in.Email), zap.Error(err))
				return nil, err
			}
			return u, nil
		},
	})

	ez.RegisterAction(e, ez.Action[domain.UserUpdate, *domain.User]{
		Method: http.MethodPatch,
		Path:   "/update",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *domain.UserUpdate) (*domain.User, error) {
			return users(tx).Update(*in)
		},
	})

	ez.RegisterAction(e, ez.Action[ez.IDParam, *domain.User]{
		Method: http.MethodDelete,
		Path:   "/delete/:id",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, tx *gorm.DB, in *ez.IDParam) (*domain.User, error) {
			return users(tx).Remove(in.ID)
		},
	})
}
