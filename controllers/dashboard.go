package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"ezpresta-backend/export"
	"ezpresta-backend/services"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatsService interface {
	Dashboard(ctx context.Context, ownerID uuid.UUID, year int) (services.Dashboard, error)
	Billing(ctx context.Context, ownerID uuid.UUID, year int) (services.Billing, error)
}

type DashboardController struct {
	Stats StatsService
}

// queryYear reads ?year=; absent means the current year (0).
func queryYear(c *gin.Context) (int, bool) {
	y := c.Query("year")
	if y == "" {
		return 0, true
	}
	year, err := strconv.Atoi(y)
	if err != nil || year < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
		return 0, false
	}
	return year, true
}

func (dc *DashboardController) GetDashboard(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	year, ok := queryYear(c)
	if !ok {
		return
	}

	d, err := dc.Stats.Dashboard(c.Request.Context(), ownerID, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ExportBilling streams the monthly and yearly billing as an xlsx workbook.
func (dc *DashboardController) ExportBilling(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	year, ok := queryYear(c)
	if !ok {
		return
	}

	b, err := dc.Stats.Billing(c.Request.Context(), ownerID, year)
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := export.BillingWorkbook(b.Year, b.Monthly, b.Yearly)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="billing-%d.xlsx"`, b.Year))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ERROR] write billing export for %s: %v", ownerID, err)
	}
}
