package entities

import (
	"time"
)

// Book is the only persisted entity. ID is zero until the store assigns one.
// There is no DeletedAt column, so deletes are hard deletes.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512" json:"title"`
	Author          string    `gorm:"index;size:256" json:"author"`
	ISBN            string    `gorm:"size:20" json:"isbn,omitempty"`
	Publisher       string    `gorm:"size:256" json:"publisher,omitempty"`
	PublicationYear int       `json:"publication_year,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsNew reports whether the book has not been persisted yet.
func (b Book) IsNew() bool {
	return b.ID == 0
}
