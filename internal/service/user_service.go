package service

import (
	"sync"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

// UserService applies the registration and update policy on top of a UserRepository.
type UserService struct {
	repo domain.UserRepository
}

func NewUserService(r domain.UserRepository) *UserService { return &UserService{repo: r} }

// dummyHash is compared against when the email is unknown so both failure paths cost one bcrypt run.
var dummyHash = sync.OnceValue(func() string {
	h, _ := utils.HashPassword("not-a-real-password-1A!")
	return h
})

func (s *UserService) Register(in domain.UserCreate) (*domain.User, error) {
	email, err := utils.NormalizeEmail(in.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	in.Email = email
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, domain.Validation(err.Error())
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if in.Username != nil && *in.Username != "" {
		taken, err := s.repo.GetByUsername(*in.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, domain.ErrUsernameTaken
		}
	}
	return s.repo.Create(in)
}

func (s *UserService) Update(in domain.UserUpdate) (*domain.User, error) {
	existing, err := s.repo.Get(in.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Email != nil {
		email, err := utils.NormalizeEmail(*in.Email)
		if err != nil {
			return nil, domain.ErrInvalidEmail
		}
		in.Email = &email
		other, err := s.repo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != existing.ID {
			return nil, domain.ErrEmailTaken
		}
	}
	if in.Username != nil && *in.Username != "" {
		other, err := s.repo.GetByUsername(*in.Username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != existing.ID {
			return nil, domain.ErrUsernameTaken
		}
	}
	if in.Password != nil && *in.Password != "" {
		if err := utils.ValidatePassword(*in.Password); err != nil {
			return nil, domain.Validation(err.Error())
		}
	}
	return s.repo.Update(existing, in)
}

func (s *UserService) Remove(id uint) (*domain.User, error) { return s.repo.Remove(id) }

func (s *UserService) List() ([]domain.User, error) { return s.repo.GetMulti() }

func (s *UserService) Get(id uint) (*domain.User, error) {
	u, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Authenticate returns nil, nil for an unknown email and for a wrong password alike.
func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	if norm, err := utils.NormalizeEmail(email); err == nil {
		email = norm
	}
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		utils.CheckPassword(password, dummyHash())
		return nil, nil
	}
	if !utils.CheckPassword(password, u.Password) {
		return nil, nil
	}
	return u, nil
}
