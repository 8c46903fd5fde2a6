package service

import (
	"errors"

	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/core/auth"
	"go-gin-gorm-blog/internal/domain"
)

const TokenTypeBearer = "bearer"

// AuthService issues access tokens and resolves them back to users.
type AuthService struct {
	JWT *auth.JWTer
	Log *zap.Logger
}

func NewAuthService(j *auth.JWTer, l *zap.Logger) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{JWT: j, Log: l}
}

func (s *AuthService) Login(users domain.UserRepository, email, password string) (*domain.Token, error) {
	u, err := NewUserService(users).Authenticate(email, password)
	if err != nil {
		loginTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if u == nil {
		loginTotal.WithLabelValues("rejected").Inc()
		s.Log.Info("login rejected", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}
	tok, err := s.JWT.Issue(u.ID)
	if err != nil {
		loginTotal.WithLabelValues("error").Inc()
		return nil, domain.Internal("issue token failed", err)
	}
	loginTotal.WithLabelValues("ok").Inc()
	return &domain.Token{AccessToken: tok, TokenType: TokenTypeBearer}, nil
}

// Resolve maps a bearer token to its user. A bad token is Unauthorized; a token
// whose user is gone is NotFound.
func (s *AuthService) Resolve(users domain.UserRepository, token string) (*domain.User, error) {
	id, err := s.JWT.Subject(token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			s.Log.Debug("token rejected", zap.Error(err))
			return nil, &domain.Error{Kind: domain.KindUnauthorized, Msg: "could not validate credentials", Err: err}
		}
		return nil, err
	}
	u, err := users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
