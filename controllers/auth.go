package controllers

import (
	"errors"
	"net/http"
	"time"

	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Users  repository.UserRepository
	Tokens utils.TokenConfig
}

func userSummary(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"companyName": u.CompanyName,
	}
}

// issueToken answers with a token for u, also set as an HTTP-only cookie.
func (ac *AuthController) issueToken(c *gin.Context, status int, u *models.User, extra gin.H) {
	// Every account owns its own data.
	token, err := utils.GenerateToken(ac.Tokens, u.ID, u.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	expiry := ac.Tokens.Expiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	c.SetCookie("token", token, int(expiry.Seconds()), "/", "", true, true)

	body := gin.H{"token": token, "user": userSummary(u)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := ac.Users.GetByEmail(c.Request.Context(), input.Email); err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	user := models.User{
		Email:       input.Email,
		Password:    input.Password, // hashed in BeforeCreate
		Name:        input.Name,
		CompanyName: input.CompanyName,
		Phone:       input.Phone,
		IsActive:    true,
	}
	if err := ac.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.RespondWithError(c, http.StatusConflict, "Email already registered")
			return
		}
		respondError(c, err)
		return
	}

	ac.issueToken(c, http.StatusCreated, &user, gin.H{"message": "Registration successful"})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.Users.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, err)
		return
	}
	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := ac.Users.Update(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	ac.issueToken(c, http.StatusOK, user, nil)
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := utils.UserID(c)
	if !ok {
		return
	}
	user, err := ac.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
