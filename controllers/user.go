package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vipulchandan/BookManagement/models"
	"github.com/vipulchandan/BookManagement/storage"
	"github.com/vipulchandan/BookManagement/utils"
	"github.com/vipulchandan/BookManagement/validation"
)

// RegisterUser handles POST /register. Fields are checked in a fixed
// order and the first failing rule wins.
func RegisterUser(users storage.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title    string         `json:"title"`
			Name     string         `json:"name"`
			Phone    string         `json:"phone"`
			Email    string         `json:"email"`
			Password string         `json:"password"`
			Address  models.Address `json:"address"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "User data is required")
			return
		}

		if input.Title == "" {
			fail(c, http.StatusBadRequest, "User title is required")
			return
		}
		if !validation.In(input.Title, validation.UserTitles...) {
			fail(c, http.StatusBadRequest, "Invalid user title. User title must be Mr, Mrs, or Miss")
			return
		}

		if input.Name == "" {
			fail(c, http.StatusBadRequest, "User name is required")
			return
		}

		if input.Phone == "" {
			fail(c, http.StatusBadRequest, "User phone number is required")
			return
		}
		if _, err := users.UserByPhone(input.Phone); err == nil {
			fail(c, http.StatusBadRequest, "Phone number already exists")
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			failInternal(c, err)
			return
		}
		if !validation.ValidPhone(input.Phone) {
			fail(c, http.StatusBadRequest, "Please enter a valid phone number")
			return
		}

		if input.Email == "" {
			fail(c, http.StatusBadRequest, "User email is required")
			return
		}
		if _, err := users.UserByEmail(input.Email); err == nil {
			fail(c, http.StatusBadRequest, "Email already exists")
			return
		} else if !errors.Is(err, storage.ErrNotFound) {
			failInternal(c, err)
			return
		}
		if !validation.ValidEmail(input.Email) {
			fail(c, http.StatusBadRequest, "Please enter a valid email")
			return
		}

		if input.Password == "" {
			fail(c, http.StatusBadRequest, "User password is required")
			return
		}
		if len(input.Password) < 8 || len(input.Password) > 15 {
			fail(c, http.StatusBadRequest, "Password must be between 8 and 15 characters")
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			failInternal(c, err)
			return
		}

		now := time.Now()
		user := models.User{
			ID:        uuid.NewString(),
			Title:     input.Title,
			Name:      input.Name,
			Phone:     input.Phone,
			Email:     input.Email,
			Password:  hashed,
			Address:   input.Address,
			CreatedAt: now,
			UpdatedAt: now,
		}

		// The unique indexes on phone and email are the final arbiter:
		// a concurrent registration that slipped past the checks above
		// loses here.
		if err := users.CreateUser(&user); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				fail(c, http.StatusBadRequest, "Phone number or email already exists")
				return
			}
			failInternal(c, err)
			return
		}

		respond(c, http.StatusCreated, "User created successfully", user)
	}
}

// LoginUser handles POST /login. The issued token is echoed in the
// x-api-key response header.
func LoginUser(users storage.UserStore, tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "User data is required")
			return
		}

		if input.Email == "" {
			fail(c, http.StatusBadRequest, "User email is required")
			return
		}
		if !validation.ValidEmail(input.Email) {
			fail(c, http.StatusBadRequest, "Please enter a valid email")
			return
		}
		if input.Password == "" {
			fail(c, http.StatusBadRequest, "User password is required")
			return
		}

		user, err := users.UserByEmail(input.Email)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail(c, http.StatusUnauthorized, "Incorrect email or password")
				return
			}
			failInternal(c, err)
			return
		}
		if !utils.CheckPasswordHash(input.Password, user.Password) {
			fail(c, http.StatusUnauthorized, "Incorrect email or password")
			return
		}

		token, err := tokens.CreateToken(user.ID)
		if err != nil {
			failInternal(c, err)
			return
		}

		c.Header("x-api-key", token)
		respond(c, http.StatusOK, "User logged in successfully", gin.H{"token": token})
	}
}
