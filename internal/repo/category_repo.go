package repo

import (
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

type CategoryRepo struct {
	*Gateway[domain.Category, domain.CategoryCreate, domain.CategoryUpdate]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{NewGateway[domain.Category, domain.CategoryCreate, domain.CategoryUpdate](db, GatewayOpts[domain.Category, domain.CategoryCreate]{
		NotFound: domain.ErrCategoryNotFound,
		Build: func(_ *gorm.DB, in domain.CategoryCreate) (*domain.Category, error) {
			return &domain.Category{Name: in.Name, Description: in.Description}, nil
		},
		BeforeRemove: func(tx *gorm.DB, id uint) error {
			if err := tx.Exec("DELETE FROM post_tags WHERE post_id IN (SELECT id FROM posts WHERE category_id = ?)", id).Error; err != nil {
				return err
			}
			return tx.Where("category_id = ?", id).Delete(&domain.Post{}).Error
		},
	})}
}

func (r *CategoryRepo) WithTx(tx *gorm.DB) *CategoryRepo {
	return &CategoryRepo{r.Gateway.with(tx)}
}
