package books

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// SampleBooks returns a handful of public domain titles for demo databases.
func SampleBooks() []entities.Book {
	return []entities.Book{
		{Title: "Meditations", Author: "Marcus Aurelius", PublicationYear: 180},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Publisher: "T. Egerton", PublicationYear: 1813},
		{Title: "Frankenstein", Author: "Mary Shelley", Publisher: "Lackington, Hughes, Harding, Mavor & Jones", PublicationYear: 1818},
		{Title: "Walden", Author: "Henry David Thoreau", Publisher: "Ticknor and Fields", PublicationYear: 1854},
		{Title: "On the Origin of Species", Author: "Charles Darwin", Publisher: "John Murray", PublicationYear: 1859},
		{Title: "Moby-Dick", Author: "Herman Melville", Publisher: "Harper & Brothers", PublicationYear: 1851},
		{Title: "The Adventures of Sherlock Holmes", Author: "Arthur Conan Doyle", Publisher: "George Newnes", PublicationYear: 1892},
	}
}

// Seed saves every book as a new record and returns how many were stored.
// Existing ids on the input are ignored.
func (r *Repository) Seed(ctx context.Context, books []entities.Book) (int, error) {
	saved := 0
	for _, book := range books {
		book.ID = 0
		if _, err := r.Save(ctx, &book); err != nil {
			return saved, fmt.Errorf("failed to seed %q: %w", book.Title, err)
		}
		saved++
	}
	return saved, nil
}
