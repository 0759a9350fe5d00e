package controllers

import (
	"net/http"

	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogInput struct {
	Type                  string          `json:"type" binding:"required"`
	Name                  string          `json:"name" binding:"required"`
	Description           string          `json:"description"`
	DurationCode          int             `json:"duration" binding:"min=-1,max=47"`
	Price                 decimal.Decimal `json:"price"`
	Color                 string          `json:"color"`
	PayableOnline         bool            `json:"payableOnline"`
	BookableOnline        bool            `json:"bookableOnline"`
	PayableInInstallments bool            `json:"payableInInstallments"`
}

func (in CatalogInput) apply(item *models.CatalogItem) {
	item.Type = in.Type
	item.Name = in.Name
	item.Description = in.Description
	item.DurationCode = in.DurationCode
	item.Price = in.Price
	item.Color = in.Color
	item.PayableOnline = in.PayableOnline
	item.BookableOnline = in.BookableOnline
	item.PayableInInstallments = in.PayableInInstallments
}

type catalogResponse struct {
	models.CatalogItem
	DurationLabel string `json:"durationLabel"`
}

func catalogView(item models.CatalogItem) catalogResponse {
	return catalogResponse{CatalogItem: item, DurationLabel: utils.FormatDuration(item.DurationCode)}
}

type CatalogController struct {
	Catalog repository.Store[models.CatalogItem]
}

func (cc *CatalogController) bind(c *gin.Context) (CatalogInput, bool) {
	var input CatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return input, false
	}
	if input.Price.IsNegative() {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Price cannot be negative")
		return input, false
	}
	return input, true
}

func (cc *CatalogController) CreateItem(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	input, ok := cc.bind(c)
	if !ok {
		return
	}

	item := models.CatalogItem{OwnerID: ownerID}
	input.apply(&item)
	if err := cc.Catalog.Create(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogView(item))
}

// GetItems lists the catalog, optionally narrowed by ?type=.
func (cc *CatalogController) GetItems(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	filter := map[string]any{}
	if t := c.Query("type"); t != "" {
		filter["type"] = t
	}
	items, err := cc.Catalog.Find(c.Request.Context(), ownerID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]catalogResponse, len(items))
	for i, item := range items {
		out[i] = catalogView(item)
	}
	c.JSON(http.StatusOK, out)
}

func (cc *CatalogController) GetItem(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := cc.Catalog.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogView(*item))
}

// UpdateItem replaces the item. Existing orders keep the name, type and
// price they were booked with.
func (cc *CatalogController) UpdateItem(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	input, ok := cc.bind(c)
	if !ok {
		return
	}

	item, err := cc.Catalog.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	input.apply(item)
	if err := cc.Catalog.Save(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogView(*item))
}

func (cc *CatalogController) DeleteItem(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := cc.Catalog.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catalog item deleted successfully"})
}
