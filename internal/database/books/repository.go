// Package books provides the persistence gateway for the Book entity.
//
// It implements the BookStore interface defined in internal/http/books.go.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, found, err := repo.FindByID(ctx, 123)
package books

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAll returns every stored book ordered by id. The slice is empty, not
// nil, when there are no books.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("find all books: %w", err)
	}
	return books, nil
}

// FindByID returns the book with the given id. A missing book is reported
// through the boolean, not as an error.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Book, bool, error) {
	if !storable(id) {
		return nil, false, nil
	}

	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find book %d: %w", id, err)
	}
	return &book, true, nil
}

// Save inserts the book when its ID is zero and overwrites the row with the
// same ID otherwise. An ID that matches no row is not trusted: the book is
// inserted under a store-assigned ID instead. The stored row, including its
// ID, is written back into book.
func (r *Repository) Save(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	db := r.db.WithContext(ctx)

	if !book.IsNew() {
		updated, err := r.update(db, book)
		if err != nil {
			return nil, fmt.Errorf("save book %d: %w", book.ID, err)
		}
		if !updated {
			book.ID = 0
		}
	}

	if book.IsNew() {
		if err := db.Create(book).Error; err != nil {
			return nil, fmt.Errorf("save book: %w", err)
		}
	}

	if err := db.First(book, book.ID).Error; err != nil {
		return nil, fmt.Errorf("reload book %d: %w", book.ID, err)
	}
	return book, nil
}

// update overwrites every column but CreatedAt and reports whether a row
// with book.ID existed.
func (r *Repository) update(db *gorm.DB, book *entities.Book) (bool, error) {
	if !storable(book.ID) {
		return false, nil
	}
	res := db.Model(book).Select("*").Omit("ID", "CreatedAt").Updates(book)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteByID removes the book with the given id. Deleting an id that does
// not exist is a no-op.
func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	if !storable(id) {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&entities.Book{}, id).Error; err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

// storable reports whether id fits the signed 64-bit primary key column.
// Larger ids can never match a row.
func storable(id uint) bool {
	return uint64(id) <= math.MaxInt64
}

// Count returns the number of stored books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}
