package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
	"go-gin-gorm-blog/internal/transport/http/ez"
)

type Post struct{ d Deps }

func NewPost(d Deps) *Post { return &Post{d: d} }

func (h *Post) Priority() int { return 50 }

func (h *Post) MountAPI(api *gin.RouterGroup) {
	e := h.d.actions(api.Group("/post"))

	ez.Crud(e, ez.CrudConfig[domain.Post, domain.PostCreate, domain.PostUpdate]{
		Name:     "post",
		NotFound: domain.ErrPostNotFound,
		Repo: func(tx *gorm.DB) ez.Resource[domain.Post, domain.PostCreate, domain.PostUpdate] {
			return repo.NewPostRepo(tx)
		},
		AuthMutations: true,
		Hooks: ez.CrudHooks[domain.Post, domain.PostCreate, domain.PostUpdate]{
			BeforeCreate: func(c *gin.Context, tx *gorm.DB, in *domain.PostCreate) error {
				if err := h.checkRefs(tx, &in.AuthorID, &in.CategoryID); err != nil {
					return err
				}
				return h.warnUnknownTags(tx, in.Tags)
			},
			BeforeUpdate: func(c *gin.Context, tx *gorm.DB, _ *domain.Post, in *domain.PostUpdate) error {
				if err := h.checkRefs(tx, in.AuthorID, in.CategoryID); err != nil {
					return err
				}
				if in.Tags == nil {
					return nil
				}
				return h.warnUnknownTags(tx, *in.Tags)
			},
		},
	})

	ez.RegisterAction(e, ez.Action[ez.IDParam, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/byUser/:id",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, tx *gorm.DB, in *ez.IDParam) ([]domain.Post, error) {
			u, err := repo.NewUserRepo(tx).Get(in.ID)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, domain.ErrUserNotFound
			}
			return repo.NewPostRepo(tx).ByAuthor(in.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[ez.IDParam, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/byCategory/:id",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, tx *gorm.DB, in *ez.IDParam) ([]domain.Post, error) {
			cat, err := repo.NewCategoryRepo(tx).Get(in.ID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrCategoryNotFound
			}
			return repo.NewPostRepo(tx).ByCategory(in.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[ez.IDParam, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/byTag/:id",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, tx *gorm.DB, in *ez.IDParam) ([]domain.Post, error) {
			tag, err := repo.NewTagRepo(tx).Get(in.ID)
			if err != nil {
				return nil, err
			}
			if tag == nil {
				return nil, domain.ErrTagNotFound
			}
			return repo.NewPostRepo(tx).ByTag(in.ID)
		},
	})
}

// checkRefs verifies the author and category a post points at; nil means unchanged.
func (h *Post) checkRefs(tx *gorm.DB, authorID, categoryID *uint) error {
	if authorID != nil {
		u, err := repo.NewUserRepo(tx).Get(*authorID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
	}
	if categoryID != nil {
		cat, err := repo.NewCategoryRepo(tx).Get(*categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrCategoryNotFound
		}
	}
	return nil
}

// warnUnknownTags logs tag ids that will be dropped from the post.
func (h *Post) warnUnknownTags(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repo.NewTagRepo(tx).Existing(ids)
	if err != nil {
		return err
	}
	known := make(map[uint]struct{}, len(found))
	for _, t := range found {
		known[t.ID] = struct{}{}
	}
	var dropped []uint
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) > 0 {
		h.d.log().Warn("unknown tag ids dropped", zap.Uints("tags", dropped))
	}
	return nil
}
