package controllers

import (
	"net/http"
	"strings"

	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name           *string `json:"name"`
	CompanyName    *string `json:"companyName"`
	CompanyAddress *string `json:"companyAddress"`
	Phone          *string `json:"phone" binding:"omitempty,phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
}

type ProfileController struct {
	Users repository.UserRepository
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := utils.UserID(c)
	if !ok {
		return
	}
	user, err := pc.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":           user.Name,
		"companyName":    user.CompanyName,
		"companyAddress": user.CompanyAddress,
		"phone":          user.Phone,
		"email":          user.Email,
	})
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := utils.UserID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := pc.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.CompanyName != nil {
		user.CompanyName = *input.CompanyName
	}
	if input.CompanyAddress != nil {
		user.CompanyAddress = *input.CompanyAddress
	}
	if input.Phone != nil {
		user.Phone = utils.NormalizePhone(*input.Phone)
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}

	if err := pc.Users.Update(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
