package ez

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/cache"
	"go-gin-gorm-blog/internal/domain"
)

// Resource is what a repository offers to the generic CRUD routes.
type Resource[E domain.Entity, C any, U domain.Patch] interface {
	Get(id uint) (*E, error)
	GetMulti() ([]E, error)
	Create(in C) (*E, error)
	Update(existing *E, in U) (*E, error)
	Remove(id uint) (*E, error)
	Search(keyword string) ([]E, error)
}

type CrudHooks[E any, C any, U any] struct {
	BeforeCreate func(c *gin.Context, tx *gorm.DB, in *C) error
	BeforeUpdate func(c *gin.Context, tx *gorm.DB, existing *E, in *U) error
	// AfterWrite runs after commit for create, update and delete.
	AfterWrite func(c *gin.Context, e *E)
}

type CrudConfig[E domain.Entity, C any, U domain.Patch] struct {
	Name     string // cache key namespace, e.g. "category"
	NotFound error
	Repo     func(tx *gorm.DB) Resource[E, C, U]
	Hooks    CrudHooks[E, C, U]

	AllowList   bool
	AllowGet    bool
	AllowSearch bool
	AllowCreate bool
	AllowUpdate bool
	AllowDelete bool

	// AuthMutations puts create, update and delete behind the auth middleware.
	AuthMutations bool

	// Cache serves list and get reads; nil disables it.
	Cache    *cache.Cache
	CacheTTL time.Duration
}

type searchQuery struct {
	Keyword string `form:"keyword"`
}

// Crud mounts:
//
//	GET    /             list
//	GET    /:id          get
//	GET    /search       ?keyword=
//	POST   /create       create
//	PATCH  /update       partial update, id in body
//	DELETE /delete/:id   remove, returns the deleted record
func Crud[E domain.Entity, C any, U domain.Patch](e EZ, cfg CrudConfig[E, C, U]) {
	if !cfg.AllowList && !cfg.AllowGet && !cfg.AllowSearch && !cfg.AllowCreate && !cfg.AllowUpdate && !cfg.AllowDelete {
		cfg.AllowList, cfg.AllowGet, cfg.AllowSearch = true, true, true
		cfg.AllowCreate, cfg.AllowUpdate, cfg.AllowDelete = true, true, true
	}
	if cfg.NotFound == nil {
		cfg.NotFound = domain.NotFound("not found")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	listKey := cfg.Name + ":list"
	idKey := func(id uint) string { return fmt.Sprintf("%s:%d", cfg.Name, id) }

	invalidate := func(c *gin.Context, out *E) {
		if cfg.Cache != nil {
			keys := []string{listKey}
			if out != nil {
				keys = append(keys, idKey((*out).PrimaryKey()))
			}
			if err := cfg.Cache.Invalidate(c.Request.Context(), keys...); err != nil {
				e.log.Warn("cache invalidate failed", zap.String("resource", cfg.Name), zap.Error(err))
			}
		}
		if cfg.Hooks.AfterWrite != nil && out != nil {
			cfg.Hooks.AfterWrite(c, out)
		}
	}

	if cfg.AllowList {
		RegisterAction(e, Action[struct{}, []E]{
			Method: http.MethodGet,
			Path:   "/",
			Binder: BindNone,
			Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) ([]E, error) {
				out, err := cache.GetOrLoadJSON(cfg.Cache, c.Request.Context(), listKey, cfg.CacheTTL,
					func(context.Context) (*[]E, error) {
						items, err := cfg.Repo(tx).GetMulti()
						if err != nil {
							return nil, err
						}
						return &items, nil
					})
				if err != nil {
					return nil, err
				}
				if out == nil {
					return []E{}, nil
				}
				return *out, nil
			},
		})
	}

	if cfg.AllowSearch {
		RegisterAction(e, Action[searchQuery, []E]{
			Method: http.MethodGet,
			Path:   "/search",
			Binder: BindQuery,
			Handler: func(c *gin.Context, tx *gorm.DB, in *searchQuery) ([]E, error) {
				return cfg.Repo(tx).Search(in.Keyword)
			},
		})
	}

	if cfg.AllowGet {
		RegisterAction(e, Action[IDParam, *E]{
			Method: http.MethodGet,
			Path:   "/:id",
			Binder: BindURI,
			Handler: func(c *gin.Context, tx *gorm.DB, in *IDParam) (*E, error) {
				out, err := cache.GetOrLoadJSON(cfg.Cache, c.Request.Context(), idKey(in.ID), cfg.CacheTTL,
					func(context.Context) (*E, error) { return cfg.Repo(tx).Get(in.ID) })
				if err != nil {
					return nil, err
				}
				if out == nil {
					return nil, cfg.NotFound
				}
				return out, nil
			},
		})
	}

	if cfg.AllowCreate {
		RegisterAction(e, Action[C, *E]{
			Method: http.MethodPost,
			Path:   "/create",
			Binder: BindJSON,
			Auth:   cfg.AuthMutations,
			Handler: func(c *gin.Context, tx *gorm.DB, in *C) (*E, error) {
				if cfg.Hooks.BeforeCreate != nil {
					if err := cfg.Hooks.BeforeCreate(c, tx, in); err != nil {
						return nil, err
					}
				}
				return cfg.Repo(tx).Create(*in)
			},
			After: invalidate,
		})
	}

	if cfg.AllowUpdate {
		RegisterAction(e, Action[U, *E]{
			Method: http.MethodPatch,
			Path:   "/update",
			Binder: BindJSON,
			Auth:   cfg.AuthMutations,
			Handler: func(c *gin.Context, tx *gorm.DB, in *U) (*E, error) {
				r := cfg.Repo(tx)
				existing, err := r.Get((*in).Target())
				if err != nil {
					return nil, err
				}
				if existing == nil {
					return nil, cfg.NotFound
				}
				if cfg.Hooks.BeforeUpdate != nil {
					if err := cfg.Hooks.BeforeUpdate(c, tx, existing, in); err != nil {
						return nil, err
					}
				}
				return r.Update(existing, *in)
			},
			After: invalidate,
		})
	}

	if cfg.AllowDelete {
		RegisterAction(e, Action[IDParam, *E]{
			Method: http.MethodDelete,
			Path:   "/delete/:id",
			Binder: BindURI,
			Auth:   cfg.AuthMutations,
			Handler: func(c *gin.Context, tx *gorm.DB, in *IDParam) (*E, error) {
				return cfg.Repo(tx).Remove(in.ID)
			},
			After: invalidate,
		})
	}
}
