package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipulchandan/BookManagement/storage"
	"github.com/vipulchandan/BookManagement/utils"
)

type reviewPayload struct {
	ID         string `json:"id"`
	BookID     string `json:"bookId"`
	ReviewedBy string `json:"reviewedBy"`
	Rating     int    `json:"rating"`
	Review     string `json:"review"`
	IsDeleted  bool   `json:"isDeleted"`
}

func reviewBody(overrides map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{
		"review":     "Gripping from start to finish.",
		"rating":     4,
		"reviewedBy": "Jane Reader",
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

// seedBook creates a book through the API and returns its payload.
func seedBook(t *testing.T, router *gin.Engine, mem *storage.Memory, tokens *utils.TokenService) (bookPayload, string) {
	t.Helper()

	user, token := seedUser(t, mem, tokens)
	w, env := createBook(t, router, token, bookFields(user.ID, nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var book bookPayload
	require.NoError(t, json.Unmarshal(env.Data, &book))
	return book, token
}

func TestCreateReview(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	w, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/review", token, reviewBody(nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Status)
	assert.Equal(t, "Review added successfully", env.Message)

	// The response is the updated book merged with the new review.
	var data struct {
		bookPayload
		ReviewsData reviewPayload `json:"reviewsData"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, book.ID, data.ID)
	assert.Equal(t, 1, data.Reviews, "counter incremented by exactly one")
	assert.Equal(t, book.ID, data.ReviewsData.BookID)
	assert.Equal(t, 4, data.ReviewsData.Rating)
	assert.False(t, data.ReviewsData.IsDeleted)
}

func TestCreateReviewValidation(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	tests := []struct {
		name      string
		overrides map[string]interface{}
		message   string
	}{
		{"missing review", map[string]interface{}{"review": ""}, "Review is required"},
		{"missing rating", map[string]interface{}{"rating": nil}, "Rating is required"},
		{"fractional rating", map[string]interface{}{"rating": 3.5}, "Please enter a valid rating"},
		{"rating too low", map[string]interface{}{"rating": 0}, "Please enter rating between 1 and 5"},
		{"rating too high", map[string]interface{}{"rating": 6}, "Please enter rating between 1 and 5"},
		{"missing reviewer", map[string]interface{}{"reviewedBy": ""}, "Please enter a reviewers name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/review", token, reviewBody(tt.overrides))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Status)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestCreateReviewRatingBoundaries(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	for _, rating := range []int{1, 5} {
		w, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/review", token,
			reviewBody(map[string]interface{}{"rating": rating}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Status)
	}
}

func TestCreateReviewBookGone(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	_, token := seedUser(t, mem, tokens)

	w, env := doJSON(t, router, http.MethodPost, "/books/nope/review", token, reviewBody(nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid bookId", env.Message)

	w, env = doJSON(t, router, http.MethodPost, "/books/"+uuid.NewString()+"/review", token, reviewBody(nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found", env.Message)
}

func TestUpdateReview(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	_, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/review", token, reviewBody(nil))
	var created struct {
		ReviewsData reviewPayload `json:"reviewsData"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env := doJSON(t, router, http.MethodPut, "/books/"+book.ID+"/review/"+created.ReviewsData.ID, token,
		reviewBody(map[string]interface{}{"rating": 2, "review": "On reflection, weaker."}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Review updated successfully", env.Message)

	var data struct {
		bookPayload
		ReviewsData reviewPayload `json:"reviewsData"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.ReviewsData.Rating)
	assert.Equal(t, "On reflection, weaker.", data.ReviewsData.Review)
}

func TestUpdateReviewCombinedPresenceCheck(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	_, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/review", token, reviewBody(nil))
	var created struct {
		ReviewsData reviewPayload `json:"reviewsData"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	const combined = "Please enter a review, rating, and reviewers name for the review to be updated"
	for _, overrides := range []map[string]interface{}{
		{"review": ""},
		{"rating": nil},
		{"reviewedBy": ""},
	} {
		w, env := doJSON(t, router, http.MethodPut, "/books/"+book.ID+"/review/"+created.ReviewsData.ID, token,
			reviewBody(overrides))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, combined, env.Message)
	}
}

func TestUpdateReviewNotFound(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	w, env := doJSON(t, router, http.MethodPut, "/books/"+book.ID+"/review/"+uuid.NewString(), token, reviewBody(nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Review not found", env.Message)
}

func TestDeleteReviewRoundTrip(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	_, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/review", token, reviewBody(nil))
	var created struct {
		bookPayload
		ReviewsData reviewPayload `json:"reviewsData"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, 1, created.Reviews)

	w, env := doJSON(t, router, http.MethodDelete, "/books/"+book.ID+"/review/"+created.ReviewsData.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Review deleted successfully", env.Message)

	// Net effect of create-then-delete leaves the counter where it began.
	w, env = doJSON(t, router, http.MethodGet, "/books/"+book.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details struct {
		Reviews     int               `json:"reviews"`
		ReviewsData []json.RawMessage `json:"reviewsData"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Equal(t, 0, details.Reviews)
	assert.Empty(t, details.ReviewsData)

	// Deleting the same review again is not found.
	w, env = doJSON(t, router, http.MethodDelete, "/books/"+book.ID+"/review/"+created.ReviewsData.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Review not found", env.Message)
}

func TestReconcileBook(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, token := seedBook(t, router, mem, tokens)

	for i := 0; i < 3; i++ {
		w, _ := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/review", token, reviewBody(nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Simulate drift: bump the stored counter past the real count.
	stored, err := mem.BookByID(book.ID)
	require.NoError(t, err)
	stored.Reviews = 7
	require.NoError(t, mem.SaveBook(stored))

	w, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/reconcile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book review count reconciled", env.Message)

	var data bookPayload
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 3, data.Reviews)
}

func TestReconcileBookAuthorization(t *testing.T) {
	router, mem, tokens := newTestServer(t)
	book, _ := seedBook(t, router, mem, tokens)
	_, otherToken := seedUser(t, mem, tokens)

	w, env := doJSON(t, router, http.MethodPost, "/books/"+book.ID+"/reconcile", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Status)
}
