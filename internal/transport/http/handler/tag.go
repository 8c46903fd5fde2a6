package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/transport/http/ez"
)

type Tag struct{ d Deps }

func NewTag(d Deps) *Tag { return &Tag{d: d} }

func (h *Tag) Priority() int { return 40 }

func (h *Tag) MountAPI(api *gin.RouterGroup) {
	ez.Crud(h.d.actions(api.Group("/tag")), ez.CrudConfig[domain.Tag, domain.TagCreate, domain.TagUpdate]{
		Name:     "tag",
		NotFound: domain.ErrTagNotFound,
		Repo: func(tx *gorm.DB) ez.Resource[domain.Tag, domain.TagCreate, domain.TagUpdate] {
			return repo.NewTagRepo(tx)
		},
		AuthMutations: true,
		Cache:         h.d.Cache,
		CacheTTL:      h.d.CacheTTL,
	})
}
