package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

type UserRepo struct {
	db *gorm.DB
	*Gateway[domain.User, domain.UserCreate, domain.UserUpdate]
}

var _ domain.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *gorm.DB) *UserRepo {
	g := NewGateway[domain.User, domain.UserCreate, domain.UserUpdate](db, GatewayOpts[domain.User, domain.UserCreate]{
		NotFound:     domain.ErrUserNotFound,
		Build:        buildUser,
		BeforeRemove: removeUserPosts,
	})
	return &UserRepo{db: db, Gateway: g}
}

func buildUser(_ *gorm.DB, in domain.UserCreate) (*domain.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Username:  blankToNil(in.Username),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		IsAdmin:   in.IsAdmin,
		Gender:    in.Gender,
	}, nil
}

func removeUserPosts(tx *gorm.DB, id uint) error {
	if err := tx.Exec("DELETE FROM post_tags WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)", id).Error; err != nil {
		return err
	}
	return tx.Where("author_id = ?", id).Delete(&domain.Post{}).Error
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// Update re-hashes a supplied password; an empty one keeps the stored hash.
func (r *UserRepo) Update(existing *domain.User, in domain.UserUpdate) (*domain.User, error) {
	changes := in.Changes()
	if pw, ok := changes["password"].(string); ok {
		if pw == "" {
			delete(changes, "password")
		} else {
			hash, err := utils.HashPassword(pw)
			if err != nil {
				return nil, err
			}
			changes["password"] = hash
		}
	}
	if _, ok := changes["username"]; ok && blankToNil(in.Username) == nil {
		changes["username"] = nil
	}
	return r.apply(existing, changes)
}

func (r *UserRepo) GetByID(id uint) (*domain.User, error) {
	return r.first("id = ?", id)
}

func (r *UserRepo) GetByEmail(email string) (*domain.User, error) {
	return r.first("email = ?", email)
}

func (r *UserRepo) GetByUsername(username string) (*domain.User, error) {
	return r.first("username = ?", username)
}

func (r *UserRepo) first(cond string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List pages users newest first; q filters on name, email and username.
func (r *UserRepo) List(offset, limit int, q string) ([]domain.User, int64, error) {
	tx := r.db.Model(&domain.User{})
	if q = strings.TrimSpace(q); q != "" {
		p := "%" + escapeLike(strings.ToLower(q)) + "%"
		tx = tx.Where(
			"LOWER(first_name) LIKE ? ESCAPE '!' OR LOWER(last_name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!' OR LOWER(username) LIKE ? ESCAPE '!'",
			p, p, p, p,
		)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := []domain.User{}
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc, id desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// WithTx binds the repository to a transaction.
func (r *UserRepo) WithTx(tx *gorm.DB) *UserRepo {
	return &UserRepo{db: tx, Gateway: r.Gateway.with(tx)}
}
