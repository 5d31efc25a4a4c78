package storage

import (
	"sort"
	"sync"

	"github.com/vipulchandan/BookManagement/models"
)

// Memory is a map-backed implementation of the three stores. The handler
// tests run the real router against it; it enforces the same unique
// constraints the database indexes do.
type Memory struct {
	mu      sync.Mutex
	users   map[string]models.User
	books   map[string]models.Book
	reviews map[string]models.Review
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]models.User),
		books:   make(map[string]models.Book),
		reviews: make(map[string]models.Review),
	}
}

func (m *Memory) Stores() Stores {
	return Stores{Users: m, Books: m, Reviews: m}
}

func (m *Memory) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Phone == u.Phone || other.Email == u.Email {
			return ErrDuplicate
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByID(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) UserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByPhone(phone string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Phone == phone {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateBook(b *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.books {
		if other.Title == b.Title || other.ISBN == b.ISBN {
			return ErrDuplicate
		}
	}
	m.books[b.ID] = *b
	return nil
}

func (m *Memory) BookByID(id string) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok || b.IsDeleted {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *Memory) BookByTitle(title, excludeID string) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.Title == title && b.ID != excludeID {
			b := b
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) BookByISBN(isbn, excludeID string) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ISBN == isbn && b.ID != excludeID {
			b := b
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListBooks(f BookFilter) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := make([]models.Book, 0)
	for _, b := range m.books {
		if b.IsDeleted {
			continue
		}
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.Category != "" && b.Category != f.Category {
			continue
		}
		if f.Subcategory != "" && b.Subcategory != f.Subcategory {
			continue
		}
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

func (m *Memory) SaveBook(b *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		return ErrNotFound
	}
	m.books[b.ID] = *b
	return nil
}

func (m *Memory) CreateReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[r.ID] = *r
	return nil
}

func (m *Memory) ReviewByID(id string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok || r.IsDeleted {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) ReviewsForBook(bookID string) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reviews := make([]models.Review, 0)
	for _, r := range m.reviews {
		if r.BookID == bookID && !r.IsDeleted {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].ReviewedAt.Before(reviews[j].ReviewedAt)
	})
	return reviews, nil
}

func (m *Memory) CountReviews(bookID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.reviews {
		if r.BookID == bookID && !r.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (m *Memory) SaveReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[r.ID]; !ok {
		return ErrNotFound
	}
	m.reviews[r.ID] = *r
	return nil
}
