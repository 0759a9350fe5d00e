// controllers/reminder.go
package controllers

import (
	"net/http"

	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/services"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReminderTemplateInput defines the expected JSON structure
type ReminderTemplateInput struct {
	Message  string `json:"message" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// ReminderController manages the single reminder template of an owner.
type ReminderController struct {
	Templates repository.Store[models.ReminderTemplate]
}

func (rc *ReminderController) current(c *gin.Context, ownerID uuid.UUID) (*models.ReminderTemplate, error) {
	templates, err := rc.Templates.Find(c.Request.Context(), ownerID, nil)
	if err != nil || len(templates) == 0 {
		return nil, err
	}
	return &templates[0], nil
}

// GetReminderTemplate returns the owner's template, or the built-in wording
// when none was saved yet.
func (rc *ReminderController) GetReminderTemplate(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	tmpl, err := rc.current(c, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if tmpl == nil {
		c.JSON(http.StatusOK, models.ReminderTemplate{Message: services.DefaultReminderMessage, IsActive: true})
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (rc *ReminderController) UpdateReminderTemplate(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	var input ReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	tmpl, err := rc.current(c, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if tmpl == nil {
		tmpl = &models.ReminderTemplate{OwnerID: ownerID, IsActive: true}
		status = http.StatusCreated
	}
	tmpl.Message = input.Message
	if input.IsActive != nil {
		tmpl.IsActive = *input.IsActive
	}

	if status == http.StatusCreated {
		err = rc.Templates.Create(c.Request.Context(), tmpl)
	} else {
		err = rc.Templates.Save(c.Request.Context(), tmpl)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, tmpl)
}
