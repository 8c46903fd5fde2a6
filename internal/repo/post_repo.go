package repo

import (
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

type PostRepo struct {
	db *gorm.DB
	*Gateway[domain.Post, domain.PostCreate, domain.PostUpdate]
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	g := NewGateway[domain.Post, domain.PostCreate, domain.PostUpdate](db, GatewayOpts[domain.Post, domain.PostCreate]{
		NotFound: domain.ErrPostNotFound,
		Build:    buildPost,
		Preload:  []string{"Tags"},
		Omit:     []string{"Tags.*"},
		BeforeRemove: func(tx *gorm.DB, id uint) error {
			return tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error
		},
	})
	return &PostRepo{db: db, Gateway: g}
}

// buildPost links only the tag ids that exist; unknown ids are dropped.
func buildPost(tx *gorm.DB, in domain.PostCreate) (*domain.Post, error) {
	tags, err := findTags(tx, in.Tags)
	if err != nil {
		return nil, err
	}
	return &domain.Post{
		Title:      in.Title,
		Body:       in.Body,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		Tags:       tags,
	}, nil
}

// Update applies column changes and, when in.Tags is set, replaces the tag set.
func (r *PostRepo) Update(existing *domain.Post, in domain.PostUpdate) (*domain.Post, error) {
	if in.Tags == nil {
		return r.Gateway.Update(existing, in)
	}
	var out *domain.Post
	err := r.db.Transaction(func(tx *gorm.DB) error {
		g := r.Gateway.with(tx)
		updated, err := g.apply(existing, in.Changes())
		if err != nil {
			return err
		}
		tags, err := findTags(tx, *in.Tags)
		if err != nil {
			return err
		}
		assoc := tx.Model(&domain.Post{ID: updated.ID}).Association("Tags")
		if len(tags) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(tags)
		}
		if err != nil {
			return err
		}
		out, err = g.Get(updated.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostRepo) ByAuthor(authorID uint) ([]domain.Post, error) {
	return r.list(r.db.Where("posts.author_id = ?", authorID))
}

func (r *PostRepo) ByCategory(categoryID uint) ([]domain.Post, error) {
	return r.list(r.db.Where("posts.category_id = ?", categoryID))
}

func (r *PostRepo) ByTag(tagID uint) ([]domain.Post, error) {
	return r.list(r.db.
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID))
}

func (r *PostRepo) list(tx *gorm.DB) ([]domain.Post, error) {
	out := []domain.Post{}
	if err := r.query(tx).Order("posts.id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostRepo) WithTx(tx *gorm.DB) *PostRepo {
	return &PostRepo{db: tx, Gateway: r.Gateway.with(tx)}
}
