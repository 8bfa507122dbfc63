package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/security"
)

// Template names
const (
	TemplateBookList = "books/list"
	TemplateBookForm = "books/form"
	TemplateError    = "error"
)

const booksPath = "/books"

// DeleteBookPathPrefix is the GET route that mutates state, for read-only mode.
const DeleteBookPathPrefix = booksPath + "/delete/"

// BookStore is the persistence gateway used by BooksController.
type BookStore interface {
	FindAll(ctx context.Context) ([]entities.Book, error)
	FindByID(ctx context.Context, id uint) (*entities.Book, bool, error)
	Save(ctx context.Context, book *entities.Book) (*entities.Book, error)
	DeleteByID(ctx context.Context, id uint) error
}

// FlashStore keeps one-shot messages between a redirect and the next page.
type FlashStore interface {
	Flash(ctx context.Context, message string)
	PopFlash(ctx context.Context) string
}

// BookListView is the model for the books/list template.
type BookListView struct {
	Books    []entities.Book
	Total    int
	Flash    string
	ReadOnly bool
}

// BookFormView is the model for the books/form template.
type BookFormView struct {
	Book          entities.Book
	IsNew         bool
	CSRFFieldName string
	CSRFToken     string
}

// BookForm is the submitted body of POST /books/save. An empty id creates
// a new book.
type BookForm struct {
	ID              uint   `form:"id"`
	Title           string `form:"title"`
	Author          string `form:"author"`
	ISBN            string `form:"isbn"`
	Publisher       string `form:"publisher"`
	PublicationYear int    `form:"publication_year"`
}

// ToBook converts the form into an entity.
func (f BookForm) ToBook() entities.Book {
	return entities.Book{
		ID:              f.ID,
		Title:           f.Title,
		Author:          f.Author,
		ISBN:            f.ISBN,
		Publisher:       f.Publisher,
		PublicationYear: f.PublicationYear,
	}
}

type BooksController struct {
	store BookStore
	flash FlashStore
}

// NewBooksController creates the books controller. flash may be nil, in
// which case no messages are shown after redirects.
func NewBooksController(store BookStore, flash FlashStore) *BooksController {
	return &BooksController{store: store, flash: flash}
}

// ListBooks renders every stored book.
// GET /books
func (bc *BooksController) ListBooks(c *gin.Context) {
	books, err := bc.store.FindAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	view := BookListView{
		Books:    books,
		Total:    len(books),
		ReadOnly: isReadOnly(c),
	}
	if bc.flash != nil {
		view.Flash = bc.flash.PopFlash(c.Request.Context())
	}

	c.HTML(http.StatusOK, TemplateBookList, view)
}

// NewBookForm renders an empty form.
// GET /books/new
func (bc *BooksController) NewBookForm(c *gin.Context) {
	c.HTML(http.StatusOK, TemplateBookForm, bc.formView(c, entities.Book{}))
}

// EditBookForm renders the form bound to an existing book.
// GET /books/edit/:id
func (bc *BooksController) EditBookForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.findBook(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, TemplateBookForm, bc.formView(c, *book))
}

// SaveBook creates or updates a book from the submitted form.
// POST /books/save
func (bc *BooksController) SaveBook(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		abortWithBindError(c, err)
		return
	}

	book := form.ToBook()
	if _, err := bc.store.Save(c.Request.Context(), &book); err != nil {
		abortWithError(c, err)
		return
	}

	if bc.flash != nil {
		bc.flash.Flash(c.Request.Context(), "Book saved")
	}
	c.Redirect(http.StatusSeeOther, booksPath)
}

// DeleteBook removes a book. Unknown ids are ignored.
// GET /books/delete/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.DeleteByID(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	if bc.flash != nil {
		bc.flash.Flash(c.Request.Context(), "Book deleted")
	}
	c.Redirect(http.StatusFound, booksPath)
}

// findBook returns *InvalidBookIDError when no book has the given id.
func (bc *BooksController) findBook(ctx context.Context, id uint) (*entities.Book, error) {
	book, found, err := bc.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &InvalidBookIDError{ID: id}
	}
	return book, nil
}

func (bc *BooksController) formView(c *gin.Context, book entities.Book) BookFormView {
	return BookFormView{
		Book:          book,
		IsNew:         book.IsNew(),
		CSRFFieldName: security.CSRFFieldName,
		CSRFToken:     csrfToken(c),
	}
}
