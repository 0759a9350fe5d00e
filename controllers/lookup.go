package controllers

import (
	"net/http"
	"strings"

	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LookupInput struct {
	Name string `json:"name" binding:"required"`
}

// LookupController serves one of the owner's pick lists; routes mounts one
// per kind.
type LookupController struct {
	Lookups repository.Store[models.Lookup]
	Kind    models.LookupKind
	Stats   StatsInvalidator
}

func (lc *LookupController) invalidate(c *gin.Context, ownerID uuid.UUID) {
	if lc.Stats != nil {
		lc.Stats.Invalidate(c.Request.Context(), ownerID)
	}
}

func (lc *LookupController) Create(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	var input LookupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	name := strings.TrimSpace(input.Name)
	n, err := lc.Lookups.Count(c.Request.Context(), ownerID, map[string]any{"kind": string(lc.Kind), "name": name})
	if err != nil {
		respondError(c, err)
		return
	}
	if n > 0 {
		utils.RespondWithError(c, http.StatusConflict, "An entry with this name already exists")
		return
	}

	entry := models.Lookup{OwnerID: ownerID, Kind: lc.Kind, Name: name}
	if err := lc.Lookups.Create(c.Request.Context(), &entry); err != nil {
		respondError(c, err)
		return
	}
	lc.invalidate(c, ownerID)
	c.JSON(http.StatusCreated, entry)
}

func (lc *LookupController) List(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	entries, err := lc.Lookups.Find(c.Request.Context(), ownerID, map[string]any{"kind": string(lc.Kind)})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// get loads the entry and checks it belongs to this controller's list.
func (lc *LookupController) get(c *gin.Context) (*models.Lookup, bool) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return nil, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	entry, err := lc.Lookups.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if entry.Kind != lc.Kind {
		respondError(c, repository.ErrNotFound)
		return nil, false
	}
	return entry, true
}

func (lc *LookupController) Update(c *gin.Context) {
	var input LookupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	entry, ok := lc.get(c)
	if !ok {
		return
	}

	entry.Name = strings.TrimSpace(input.Name)
	if err := lc.Lookups.Save(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}
	lc.invalidate(c, entry.OwnerID)
	c.JSON(http.StatusOK, entry)
}

func (lc *LookupController) Delete(c *gin.Context) {
	entry, ok := lc.get(c)
	if !ok {
		return
	}

	if err := lc.Lookups.Delete(c.Request.Context(), entry.OwnerID, entry.ID); err != nil {
		respondError(c, err)
		return
	}
	lc.invalidate(c, entry.OwnerID)
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
