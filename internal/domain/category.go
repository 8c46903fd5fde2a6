package domain

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Posts []Post `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c Category) PrimaryKey() uint { return c.ID }

func (Category) SearchFields() []string { return []string{"name", "description"} }

type CategoryCreate struct {
	Name        string `json:"name"        binding:"required,max=50"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

type CategoryUpdate struct {
	ID          uint    `json:"id"          binding:"required"`
	Name        *string `json:"name"        binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

func (u CategoryUpdate) Target() uint { return u.ID }

func (u CategoryUpdate) Changes() map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	return m
}
