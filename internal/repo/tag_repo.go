package repo

import (
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

type TagRepo struct {
	db *gorm.DB
	*Gateway[domain.Tag, domain.TagCreate, domain.TagUpdate]
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	g := NewGateway[domain.Tag, domain.TagCreate, domain.TagUpdate](db, GatewayOpts[domain.Tag, domain.TagCreate]{
		NotFound: domain.ErrTagNotFound,
		Build: func(_ *gorm.DB, in domain.TagCreate) (*domain.Tag, error) {
			return &domain.Tag{Name: in.Name, Description: in.Description}, nil
		},
		BeforeRemove: func(tx *gorm.DB, id uint) error {
			return tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error
		},
	})
	return &TagRepo{db: db, Gateway: g}
}

// Existing returns the tags among ids that are stored, ordered by id.
func (r *TagRepo) Existing(ids []uint) ([]domain.Tag, error) {
	return findTags(r.db, ids)
}

func (r *TagRepo) WithTx(tx *gorm.DB) *TagRepo {
	return &TagRepo{db: tx, Gateway: r.Gateway.with(tx)}
}

func findTags(tx *gorm.DB, ids []uint) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
