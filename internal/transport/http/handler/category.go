package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/transport/http/ez"
)

type Category struct{ d Deps }

func NewCategory(d Deps) *Category { return &Category{d: d} }

func (h *Category) Priority() int { return 30 }

func (h *Category) MountAPI(api *gin.RouterGroup) {
	ez.Crud(h.d.actions(api.Group("/category")), ez.CrudConfig[domain.Category, domain.CategoryCreate, domain.CategoryUpdate]{
		Name:     "category",
		NotFound: domain.ErrCategoryNotFound,
		Repo: func(tx *gorm.DB) ez.Resource[domain.Category, domain.CategoryCreate, domain.CategoryUpdate] {
			return repo.NewCategoryRepo(tx)
		},
		AuthMutations: true,
		Cache:         h.d.Cache,
		CacheTTL:      h.d.CacheTTL,
	})
}
