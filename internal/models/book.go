package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string      `gorm:"size:255;not null;index" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	CoverURL        string      `gorm:"type:text" json:"cover_url"`
	Language        string      `gorm:"size:50" json:"language"`
	PublicationYear int         `json:"publication_year"`
	CreatedBy       uuid.UUID   `gorm:"type:uuid;index" json:"created_by"`
	Authors         []Author    `gorm:"many2many:book_authors" json:"authors,omitempty"`
	Publishers      []Publisher `gorm:"many2many:book_publishers" json:"publishers,omitempty"`
	Categories      []Category  `gorm:"many2many:book_categories" json:"categories,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type Author struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Publisher struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Website   string    `gorm:"type:text" json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
