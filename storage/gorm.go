package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vipulchandan/BookManagement/models"
)

// Gorm implements UserStore, BookStore and ReviewStore on a *gorm.DB.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Stores returns the three collection views of g.
func (g *Gorm) Stores() Stores {
	return Stores{Users: g, Books: g, Reviews: g}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (g *Gorm) CreateUser(u *models.User) error {
	return translate(g.db.Create(u).Error)
}

func (g *Gorm) UserByID(id string) (*models.User, error) {
	var u models.User
	if err := g.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *Gorm) UserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := g.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *Gorm) UserByPhone(phone string) (*models.User, error) {
	var u models.User
	if err := g.db.Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *Gorm) CreateBook(b *models.Book) error {
	return translate(g.db.Create(b).Error)
}

func (g *Gorm) BookByID(id string) (*models.Book, error) {
	var b models.Book
	if err := g.db.Where("id = ? AND is_deleted = ?", id, false).First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (g *Gorm) BookByTitle(title, excludeID string) (*models.Book, error) {
	q := g.db.Where("title = ?", title)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var b models.Book
	if err := q.First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (g *Gorm) BookByISBN(isbn, excludeID string) (*models.Book, error) {
	q := g.db.Where("isbn = ?", isbn)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var b models.Book
	if err := q.First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (g *Gorm) ListBooks(f BookFilter) ([]models.Book, error) {
	q := g.db.Where("is_deleted = ?", false)
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Subcategory != "" {
		q = q.Where("subcategory = ?", f.Subcategory)
	}
	var books []models.Book
	if err := q.Order("title asc").Find(&books).Error; err != nil {
		return nil, translate(err)
	}
	return books, nil
}

func (g *Gorm) SaveBook(b *models.Book) error {
	return translate(g.db.Save(b).Error)
}

func (g *Gorm) CreateReview(r *models.Review) error {
	return translate(g.db.Create(r).Error)
}

func (g *Gorm) ReviewByID(id string) (*models.Review, error) {
	var r models.Review
	if err := g.db.Where("id = ? AND is_deleted = ?", id, false).First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (g *Gorm) ReviewsForBook(bookID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := g.db.Where("book_id = ? AND is_deleted = ?", bookID, false).Find(&reviews).Error; err != nil {
		return nil, translate(err)
	}
	return reviews, nil
}

func (g *Gorm) CountReviews(bookID string) (int, error) {
	var n int64
	if err := g.db.Model(&models.Review{}).
		Where("book_id = ? AND is_deleted = ?", bookID, false).
		Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return int(n), nil
}

func (g *Gorm) SaveReview(r *models.Review) error {
	return translate(g.db.Save(r).Error)
}
