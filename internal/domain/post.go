package domain

import "time"

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"uniqueIndex;size:50;not null" json:"title"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Tags       []Tag     `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p Post) PrimaryKey() uint { return p.ID }

func (Post) SearchFields() []string { return []string{"title", "body"} }

// PostCreate.Tags ids that do not resolve to an existing tag are dropped.
type PostCreate struct {
	Title      string `json:"title"       binding:"required,max=50"`
	Body       string `json:"body"        binding:"required"`
	AuthorID   uint   `json:"author_id"   binding:"required"`
	CategoryID uint   `json:"category_id" binding:"required"`
	Tags       []uint `json:"tags"`
}

// PostUpdate.Tags replaces the whole tag set when non-nil; an empty list clears it.
type PostUpdate struct {
	ID         uint    `json:"id"          binding:"required"`
	Title      *string `json:"title"       binding:"omitempty,min=1,max=50"`
	Body       *string `json:"body"        binding:"omitempty,min=1"`
	AuthorID   *uint   `json:"author_id"`
	CategoryID *uint   `json:"category_id"`
	Tags       *[]uint `json:"tags"`
}

func (u PostUpdate) Target() uint { return u.ID }

func (u PostUpdate) Changes() map[string]any {
	m := map[string]any{}
	if u.Title != nil {
		m["title"] = *u.Title
	}
	if u.Body != nil {
		m["body"] = *u.Body
	}
	if u.AuthorID != nil {
		m["author_id"] = *u.AuthorID
	}
	if u.CategoryID != nil {
		m["category_id"] = *u.CategoryID
	}
	return m
}
