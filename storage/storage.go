// Package storage defines the persistence interfaces the handlers depend
// on, plus the GORM-backed implementation used in production. Handlers
// never touch the database directly; uniqueness races that slip past the
// application-level existence checks are caught by the store's unique
// indexes and surface here as ErrDuplicate.
package storage

import (
	"errors"

	"github.com/vipulchandan/BookManagement/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// BookFilter narrows ListBooks. Zero-value fields are ignored.
type BookFilter struct {
	UserID      string
	Category    string
	Subcategory string
}

type UserStore interface {
	CreateUser(u *models.User) error
	UserByID(id string) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	UserByPhone(phone string) (*models.User, error)
}

type BookStore interface {
	CreateBook(b *models.Book) error
	// BookByID returns the non-deleted book with the given id.
	BookByID(id string) (*models.Book, error)
	// BookByTitle and BookByISBN look across all books, deleted included,
	// skipping excludeID when non-empty. They back the uniqueness checks.
	BookByTitle(title, excludeID string) (*models.Book, error)
	BookByISBN(isbn, excludeID string) (*models.Book, error)
	// ListBooks returns non-deleted books matching every set filter field,
	// sorted by title ascending.
	ListBooks(f BookFilter) ([]models.Book, error)
	SaveBook(b *models.Book) error
}

type ReviewStore interface {
	CreateReview(r *models.Review) error
	// ReviewByID returns the non-deleted review with the given id.
	ReviewByID(id string) (*models.Review, error)
	// ReviewsForBook returns the non-deleted reviews of a book.
	ReviewsForBook(bookID string) ([]models.Review, error)
	// CountReviews counts the non-deleted reviews of a book.
	CountReviews(bookID string) (int, error)
	SaveReview(r *models.Review) error
}

// Stores bundles the three collections for handler wiring.
type Stores struct {
	Users   UserStore
	Books   BookStore
	Reviews ReviewStore
}
