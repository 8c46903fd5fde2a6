package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/transport/http/ez"
)

// Admin serves the back-office routes under /admin/v1. Every action requires is_admin.
type Admin struct{ d Deps }

func NewAdmin(d Deps) *Admin { return &Admin{d: d} }

type userListQuery struct {
	Offset int    `form:"offset,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"`
}

type userPage struct {
	Total int64         `json:"total"`
	Items []domain.User `json:"items"`
}

type adminFlag struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

func (h *Admin) MountAdmin(admin *gin.RouterGroup) {
	e := h.d.actions(admin)
	log := h.d.log()

	ez.RegisterAction(e, ez.Action[userListQuery, userPage]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Admin:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *userListQuery) (userPage, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			items, total, err := repo.NewUserRepo(tx).List(in.Offset, in.Limit, strings.TrimSpace(in.Q))
			if err != nil {
				return userPage{}, domain.Internal("list users failed", err)
			}
			return userPage{Total: total, Items: items}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[adminFlag, *domain.User]{
		Method: http.MethodPatch,
		Path:   "/users/:id/admin",
		Binder: ez.BindJSON,
		Admin:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *adminFlag) (*domain.User, error) {
			var id ez.IDParam
			if err := c.ShouldBindUri(&id); err != nil {
				return nil, domain.Validation(err.Error())
			}
			me, err := ez.CurrentUser(c)
			if err != nil {
				return nil, err
			}
			if me.ID == id.ID && !*in.IsAdmin {
				return nil, domain.Validation("cannot revoke your own admin flag")
			}
			users := repo.NewUserRepo(tx)
			u, err := users.Get(id.ID)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, domain.ErrUserNotFound
			}
			out, err := users.Update(u, domain.UserUpdate{ID: id.ID, IsAdmin: in.IsAdmin})
			if err != nil {
				return nil, err
			}
			log.Info("admin flag changed",
				zap.Uint("by", me.ID), zap.Uint("user", id.ID), zap.Bool("is_admin", *in.IsAdmin))
			return out, nil
		},
	})

	ez.RegisterAction(e, ez.Action[ez.IDParam, *domain.Post]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: ez.BindURI,
		Admin:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *ez.IDParam) (*domain.Post, error) {
			p, err := repo.NewPostRepo(tx).Remove(in.ID)
			if err != nil {
				return nil, err
			}
			if me, err := ez.CurrentUser(c); err == nil {
				log.Info("post removed by admin", zap.Uint("by", me.ID), zap.Uint("post", in.ID))
			}
			return p, nil
		},
	})
}
