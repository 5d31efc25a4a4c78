package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vipulchandan/BookManagement/models"
	"github.com/vipulchandan/BookManagement/storage"
	"github.com/vipulchandan/BookManagement/validation"
)

// reviewInput binds the review mutation body. Rating is a float pointer
// so that a missing rating, a non-integer rating and an out-of-range
// rating each get their own message.
type reviewInput struct {
	Review     string   `json:"review"`
	Rating     *float64 `json:"rating"`
	ReviewedBy string   `json:"reviewedBy"`
}

// bookWithReview is the book document merged with a single reviewsData
// entry, as returned by the review create/update endpoints.
type bookWithReview struct {
	models.Book
	ReviewsData models.Review `json:"reviewsData"`
}

func ratingValue(in reviewInput) (int, string) {
	if in.Rating == nil {
		return 0, "Rating is required"
	}
	if *in.Rating != math.Trunc(*in.Rating) {
		return 0, "Please enter a valid rating"
	}
	rating := int(*in.Rating)
	if !validation.ValidRating(rating) {
		return 0, "Please enter rating between 1 and 5"
	}
	return rating, ""
}

// CreateReview handles POST /books/:bookId/review. The counter increment
// and the review insert are two separate writes with no transaction; a
// failure between them leaves the counter ahead of the real review count
// until the book is reconciled.
func CreateReview(books storage.BookStore, reviews storage.ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if !validation.ValidID(bookID) {
			fail(c, http.StatusBadRequest, "Please enter a valid bookId")
			return
		}

		var input reviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}

		if input.Review == "" {
			fail(c, http.StatusBadRequest, "Review is required")
			return
		}
		rating, msg := ratingValue(input)
		if msg != "" {
			fail(c, http.StatusBadRequest, msg)
			return
		}
		if input.ReviewedBy == "" {
			fail(c, http.StatusBadRequest, "Please enter a reviewers name")
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

		book.Reviews++
		book.UpdatedAt = time.Now()
		if err := books.SaveBook(book); err != nil {
			failInternal(c, err)
			return
		}

		now := time.Now()
		review := models.Review{
			ID:         uuid.NewString(),
			BookID:     bookID,
			ReviewedBy: input.ReviewedBy,
			ReviewedAt: now,
			Rating:     rating,
			Review:     input.Review,
			IsDeleted:  false,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := reviews.CreateReview(&review); err != nil {
			// The counter is already incremented at this point.
			failInternal(c, err)
			return
		}

		respond(c, http.StatusOK, "Review added successfully", bookWithReview{
			Book:        *book,
			ReviewsData: review,
		})
	}
}

// UpdateReview handles PUT /books/:bookId/review/:reviewId. Presence of
// the three fields is checked as one combined rule.
func UpdateReview(books storage.BookStore, reviews storage.ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if !validation.ValidID(bookID) {
			fail(c, http.StatusBadRequest, "Please enter a valid bookId")
			return
		}
		reviewID := c.Param("reviewId")
		if !validation.ValidID(reviewID) {
			fail(c, http.StatusBadRequest, "Please enter a valid reviewId")
			return
		}

		var input reviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}

		if input.Review == "" || input.Rating == nil || input.ReviewedBy == "" {
			fail(c, http.StatusBadRequest, "Please enter a review, rating, and reviewers name for the review to be updated")
			return
		}
		rating, msg := ratingValue(input)
		if msg != "" {
			fail(c, http.StatusBadRequest, msg)
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

		review, err := reviews.ReviewByID(reviewID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusNotFound, "Review not found")
				return
			}
			failInternal(c, err)
			return
		}

		review.Review = input.Review
		review.Rating = rating
		review.ReviewedBy = input.ReviewedBy
		review.UpdatedAt = time.Now()

		if err := reviews.SaveReview(review); err != nil {
			failInternal(c, err)
			return
		}

		respond(c, http.StatusOK, "Review updated successfully", bookWithReview{
			Book:        *book,
			ReviewsData: *review,
		})
	}
}

// DeleteReview handles DELETE /books/:bookId/review/:reviewId. The review
// is soft-deleted first, then the book counter is decremented — again two
// independent writes, and the counter has no floor at zero.
func DeleteReview(books storage.BookStore, reviews storage.ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID := c.Param("bookId")
		if !validation.ValidID(bookID) {
			fail(c, http.StatusBadRequest, "Please enter a valid bookId")
			return
		}
		reviewID := c.Param("reviewId")
		if !validation.ValidID(reviewID) {
			fail(c, http.StatusBadRequest, "Please enter a valid reviewId")
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

		review, err := reviews.ReviewByID(reviewID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusNotFound, "Review not found")
				return
			}
			failInternal(c, err)
			return
		}

		review.IsDeleted = true
		review.UpdatedAt = time.Now()
		if err := reviews.SaveReview(review); err != nil {
			failInternal(c, err)
			return
		}

		book.Reviews--
		book.UpdatedAt = time.Now()
		if err := books.SaveBook(book); err != nil {
			failInternal(c, err)
			return
		}

		respond(c, http.StatusOK, "Review deleted successfully", nil)
	}
}
