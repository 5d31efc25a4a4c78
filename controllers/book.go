package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vipulchandan/BookManagement/assetstore"
	"github.com/vipulchandan/BookManagement/models"
	"github.com/vipulchandan/BookManagement/storage"
	"github.com/vipulchandan/BookManagement/validation"
)

// bookSummary is the projection returned by GET /books.
type bookSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	UserID     string `json:"userId"`
	Category   string `json:"category"`
	ReleasedAt string `json:"releasedAt"`
	Reviews    int    `json:"reviews"`
}

// bookDetails is the projection returned by GET /books/:bookId. It carries
// every book field except the ISBN.
type bookDetails struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Excerpt     string          `json:"excerpt"`
	UserID      string          `json:"userId"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	ReleasedAt  string          `json:"releasedAt"`
	Reviews     int             `json:"reviews"`
	CoverURL    string          `json:"coverUrl"`
	IsDeleted   bool            `json:"isDeleted"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	ReviewsData []reviewSummary `json:"reviewsData"`
}

type reviewSummary struct {
	ID         string    `json:"id"`
	BookID     string    `json:"bookId"`
	ReviewedBy string    `json:"reviewedBy"`
	ReviewedAt time.Time `json:"reviewedAt"`
	Rating     int       `json:"rating"`
	Review     string    `json:"review"`
}

// CreateBook handles POST /books. The request is multipart: the cover
// image under "cover" plus the book fields as form values. The cover is
// uploaded before any field validation, mirroring the write-up flow the
// API has always had.
func CreateBook(users storage.UserStore, books storage.BookStore, assets assetstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("cover")
		if err != nil {
			fail(c, http.StatusBadRequest, "No file found")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			failInternal(c, err)
			return
		}
		defer file.Close()

		coverURL, err := assets.Save(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
		if err != nil {
			failInternal(c, err)
			return
		}

		userID := c.PostForm("userId")
		if userID == "" {
			fail(c, http.StatusBadRequest, "Please add a userId")
			return
		}
		if !validation.ValidID(userID) {
			fail(c, http.StatusBadRequest, "Please add a valid userId")
			return
		}
		if _, err := users.UserByID(userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusNotFound, "User not found")
				return
			}
			failInternal(c, err)
			return
		}

		title := c.PostForm("title")
		if title == "" {
			fail(c, http.StatusBadRequest, "Book title is required")
			return
		}
		if _, err := books.BookByTitle(title, ""); err == nil {
			fail(c, http.StatusBadRequest, "Book title already exists")
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			failInternal(c, err)
			return
		}

		excerpt := c.PostForm("excerpt")
		if excerpt == "" {
			fail(c, http.StatusBadRequest, "Book excerpt is required")
			return
		}

		isbn := c.PostForm("ISBN")
		if isbn == "" {
			fail(c, http.StatusBadRequest, "Book ISBN is required")
			return
		}
		if _, err := books.BookByISBN(isbn, ""); err == nil {
			fail(c, http.StatusBadRequest, "Book ISBN already exists")
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			failInternal(c, err)
			return
		}

		category := c.PostForm("category")
		if category == "" {
			fail(c, http.StatusBadRequest, "Book category is required")
			return
		}

		subcategory := c.PostForm("subcategory")
		if subcategory == "" {
			fail(c, http.StatusBadRequest, "Book subcategory is required")
			return
		}

		releasedAt := c.PostForm("releasedAt")
		if releasedAt == "" {
			fail(c, http.StatusBadRequest, "Book releasedAt is required")
			return
		}
		if !validation.ValidDate(releasedAt) {
			fail(c, http.StatusBadRequest, "Please enter a valid releasedAt date")
			return
		}

		callerID := c.GetString("userId")
		if !validation.ValidID(callerID) {
			fail(c, http.StatusBadRequest, callerID+" is not a valid user token id")
			return
		}
		if userID != callerID {
			fail(c, http.StatusForbidden, "Unauthorized access! You are not allowed to create this book")
			return
		}

		now := time.Now()
		book := models.Book{
			ID:          uuid.NewString(),
			Title:       title,
			Excerpt:     excerpt,
			UserID:      userID,
			ISBN:        isbn,
			Category:    category,
			Subcategory: subcategory,
			ReleasedAt:  validation.NormalizeDate(releasedAt),
			Reviews:     0,
			CoverURL:    coverURL,
			IsDeleted:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := books.CreateBook(&book); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				fail(c, http.StatusBadRequest, "Book title or ISBN already exists")
				return
			}
			failInternal(c, err)
			return
		}

		respond(c, http.StatusCreated, "Book created successfully", book)
	}
}

// GetBooks handles GET /books with optional userId, category and
// subcategory query filters. An empty result is an error only when at
// least one filter was supplied.
func GetBooks(books storage.BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		category := c.Query("category")
		subcategory := c.Query("subcategory")

		if userID != "" && !validation.ValidID(userID) {
			fail(c, http.StatusBadRequest, "Please enter a valid userId")
			return
		}

		filtered := userID != "" || category != "" || subcategory != ""

		list, err := books.ListBooks(storage.BookFilter{
			UserID:      userID,
			Category:    category,
			Subcategory: subcategory,
		})
		if err != nil {
			failInternal(c, err)
			return
		}

		if len(list) == 0 && filtered {
			fail(c, http.StatusNotFound, "No books found")
			return
		}

		summaries := make([]bookSummary, 0, len(list))
		for _, b := range list {
			summaries = append(summaries, bookSummary{
				ID:         b.ID,
				Title:      b.Title,
				Excerpt:    b.Excerpt,
				UserID:     b.UserID,
				Category:   b.Category,
				ReleasedAt: b.ReleasedAt,
				Reviews:    b.Reviews,
			})
		}

		respond(c, http.StatusOK, "Books List", summaries)
	}
}

// GetBookWithReviews handles GET /books/:bookId, joining the book with
// its non-deleted reviews. A book without reviews comes back with an
// empty reviewsData slice, not an error.
func GetBookWithReviews(books storage.BookStore, reviews storage.ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if !validation.ValidID(bookID) {
			fail(c, http.StatusBadRequest, "Please enter a valid bookId")
			return
		}

		book, err := books.BookByID(bookID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusNotFound, "Book not found")
				return
			}
			failInternal(c, err)
			return
		}

		list, err := reviews.ReviewsForBook(bookID)
		if err != nil {
			failInternal(c, err)
			return
		}

		reviewsData := make([]reviewSummary, 0, len(list))
		for _, r := range list {
			reviewsData = append(reviewsData, reviewSummary{
				ID:         r.ID,
				BookID:     r.BookID,
				ReviewedBy: r.ReviewedBy,
				ReviewedAt: r.ReviewedAt,
				Rating:     r.Rating,
				Review:     r.Review,
			})
		}

		respond(c, http.StatusOK, "Books List", bookDetails{
			ID:          book.ID,
			Title:       book.Title,
			Excerpt:     book.Excerpt,
			UserID:      book.UserID,
			Category:    book.Category,
			Subcategory: book.Subcategory,
			ReleasedAt:  book.ReleasedAt,
			Reviews:     book.Reviews,
			CoverURL:    book.CoverURL,
			IsDeleted:   book.IsDeleted,
			CreatedAt:   book.CreatedAt,
			UpdatedAt:   book.UpdatedAt,
			ReviewsData: reviewsData,
		})
	}
}

// UpdateBook handles PUT /books/:bookId. All four mutable fields must be
// supplied and are applied verbatim.
func UpdateBook(books storage.BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if !validation.ValidID(bookID) {
			fail(c, http.StatusBadRequest, "Please enter a valid bookId")
			return
		}

		callerID := c.GetString("userId")
		if !validation.ValidID(callerID) {
			fail(c, http.StatusBadRequest, callerID+" is not a valid user")
			return
		}

		book, err := books.BookByID(bookID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusNotFound, "Book not found")
				return
			}
			failInternal(c, err)
			return
		}

		if book.UserID != callerID {
			fail(c, http.StatusForbidden, "Unauthorized access! You are not allowed to update this book")
			return
		}

		var input struct {
			Title      string `json:"title"`
			Excerpt    string `json:"excerpt"`
			ReleasedAt string `json:"releasedAt"`
			ISBN       string `json:"ISBN"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.Title == "" {
			fail(c, http.StatusBadRequest, "Book title is required")
			return
		}
		if input.Excerpt == "" {
			fail(c, http.StatusBadRequest, "Book excerpt is required")
			return
		}
		if input.ReleasedAt == "" {
			fail(c, http.StatusBadRequest, "Book releasedAt is required")
			return
		}
		if input.ISBN == "" {
			fail(c, http.StatusBadRequest, "Book ISBN is required")
			return
		}

		if _, err := books.BookByTitle(input.Title, bookID); err == nil {
			fail(c, http.StatusBadRequest, "Title already exists")
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			failInternal(c, err)
			return
		}
		if _, err := books.BookByISBN(input.ISBN, bookID); err == nil {
			fail(c, http.StatusBadRequest, "ISBN already exists")
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			failInternal(c, err)
			return
		}

		book.Title = input.Title
		book.Excerpt = input.Excerpt
		book.ReleasedAt = input.ReleasedAt
		book.ISBN = input.ISBN
		book.UpdatedAt = time.Now()

		if err := books.SaveBook(book); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				fail(c, http.StatusBadRequest, "Title or ISBN already exists")
				return
			}
			failInternal(c, err)
			return
		}

		respond(c, http.StatusOK, "Book updated successfully", book)
	}
}

// DeleteBook handles DELETE /books/:bookId. Deleting an already-deleted
// book reports not found rather than success.
func DeleteBook(books storage.BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if !validation.ValidID(bookID) {
			fail(c, http.StatusBadRequest, "Please enter a valid bookId")
			return
		}

		callerID := c.GetString("userId")
		if !validation.ValidID(callerID) {
			fail(c, http.StatusBadRequest, callerID+" is not a valid user")
			return
		}

		book, err := books.BookByID(bookID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusNotFound, "Book not found")
				return
			}
			failInternal(c, err)
			return
		}

		if book.UserID != callerID {
			fail(c, http.StatusForbidden, "Unauthorized access! You are not allowed to delete this book")
			return
		}

		now := time.Now()
		book.IsDeleted = true
		book.DeletedAt = &now
		book.UpdatedAt = now

		if err := books.SaveBook(book); err != nil {
			failInternal(c, err)
			return
		}

		respond(c, http.StatusOK, "Book deleted successfully", nil)
	}
}

// ReconcileBook handles POST /books/:bookId/reconcile. It recomputes the
// denormalized review counter from the actual count of non-deleted
// reviews, repairing any drift left behind by partial failures.
func ReconcileBook(books storage.BookStore, reviews storage.ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if !validation.ValidID(bookID) {
			fail(c, http.StatusBadRequest, "Please enter a valid bookId")
			return
		}

		callerID := c.GetString("userId")
		if !validation.ValidID(callerID) {
			fail(c, http.StatusBadRequest, callerID+" is not a valid user")
			return
		}

		book, err := books.BookByID(bookID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusNotFound, "Book not found")
				return
			}
			failInternal(c, err)
			return
		}

		if book.UserID != callerID {
			fail(c, http.StatusForbidden, "Unauthorized access! You are not allowed to update this book")
			return
		}

		count, err := reviews.CountReviews(bookID)
		if err != nil {
			failInternal(c, err)
			return
		}

		book.Reviews = count
		book.UpdatedAt = time.Now()
		if err := books.SaveBook(book); err != nil {
			failInternal(c, err)
			return
		}

		respond(c, http.StatusOK, "Book review count reconciled", book)
	}
}
