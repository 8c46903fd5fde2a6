package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  *string   `gorm:"uniqueIndex;size:64" json:"username"`
	FirstName string    `gorm:"size:64" json:"first_name"`
	LastName  string    `gorm:"size:64" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	Gender    *Gender   `gorm:"size:16" json:"gender"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u User) PrimaryKey() uint { return u.ID }

func (User) SearchFields() []string {
	return []string{"first_name", "last_name", "email", "username"}
}

type UserCreate struct {
	FirstName string  `json:"first_name" binding:"omitempty,max=64"`
	LastName  string  `json:"last_name"  binding:"omitempty,max=64"`
	Email     string  `json:"email"      binding:"required"`
	Password  string  `json:"password"   binding:"required"`
	IsAdmin   bool    `json:"is_admin"`
	Gender    *Gender `json:"gender"     binding:"omitempty,oneof=Male Female"`
	Username  *string `json:"username"   binding:"omitempty,max=64"`
}

// UserUpdate carries only the fields the caller wants to change; nil means untouched.
type UserUpdate struct {
	ID        uint    `json:"id"         binding:"required"`
	FirstName *string `json:"first_name" binding:"omitempty,max=64"`
	LastName  *string `json:"last_name"  binding:"omitempty,max=64"`
	Email     *string `json:"email"`
	Username  *string `json:"username"   binding:"omitempty,max=64"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
	Gender    *Gender `json:"gender"     binding:"omitempty,oneof=Male Female"`
}

func (u UserUpdate) Target() uint { return u.ID }

// Changes holds the plaintext password under "password"; the repository hashes it.
func (u UserUpdate) Changes() map[string]any {
	m := map[string]any{}
	if u.FirstName != nil {
		m["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		m["last_name"] = *u.LastName
	}
	if u.Email != nil {
		m["email"] = *u.Email
	}
	if u.Username != nil {
		m["username"] = *u.Username
	}
	if u.Password != nil {
		m["password"] = *u.Password
	}
	if u.IsAdmin != nil {
		m["is_admin"] = *u.IsAdmin
	}
	if u.Gender != nil {
		m["gender"] = *u.Gender
	}
	return m
}

type UserRepository interface {
	Get(id uint) (*User, error)
	GetByID(id uint) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByUsername(username string) (*User, error)
	GetMulti() ([]User, error)
	List(offset, limit int, q string) ([]User, int64, error)
	Create(in UserCreate) (*User, error)
	Update(existing *User, in UserUpdate) (*User, error)
	Remove(id uint) (*User, error)
	Search(keyword string) ([]User, error)
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
