package controllers

import (
	"errors"
	"log"
	"net/http"

	"ezpresta-backend/booking"
	"ezpresta-backend/payments"
	"ezpresta-backend/pricing"
	"ezpresta-backend/repository"
	"ezpresta-backend/services"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var statusByError = []struct {
	err    error
	status int
}{
	{repository.ErrNotFound, http.StatusNotFound},
	{repository.ErrDuplicate, http.StatusConflict},
	{repository.ErrVersionConflict, http.StatusConflict},

	{booking.ErrOrderLocked, http.StatusLocked},
	{booking.ErrOrderCanceled, http.StatusConflict},
	{booking.ErrInvalidTransition, http.StatusConflict},

	{payments.ErrAlreadyPaid, http.StatusConflict},
	{payments.ErrInstallmentIndex, http.StatusNotFound},
	{payments.ErrUnknownMode, http.StatusBadRequest},
	{payments.ErrUnknownPlan, http.StatusBadRequest},
	{payments.ErrNegativePercentage, http.StatusUnprocessableEntity},
	{payments.ErrPercentagePrecision, http.StatusUnprocessableEntity},
	{payments.ErrRedistributionUndefined, http.StatusUnprocessableEntity},
	{payments.ErrFullyPaid, http.StatusUnprocessableEntity},

	{pricing.ErrNegativePrice, http.StatusUnprocessableEntity},
	{pricing.ErrUnnamedAdjustment, http.StatusUnprocessableEntity},
	{pricing.ErrIndexOutOfRange, http.StatusBadRequest},

	{services.ErrMissingSelection, http.StatusBadRequest},
	{services.ErrPercentageCount, http.StatusBadRequest},
	{services.ErrInvalidReason, http.StatusBadRequest},
	{services.ErrVersionRequired, http.StatusBadRequest},
	{services.ErrInstallmentsNotAllowed, http.StatusUnprocessableEntity},
	{services.ErrPlanLocked, http.StatusUnprocessableEntity},
	{services.ErrTaskNotFound, http.StatusNotFound},
}

// statusFor maps domain errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	var verr *payments.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Internal errors are logged
// and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondWithError(c, status, "Internal server error")
		return
	}
	utils.RespondWithError(c, status, err.Error())
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
}

// pathID parses the uuid route parameter name, answering 400 when it is not one.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// optionalID parses s, treating "" as uuid.Nil.
func optionalID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
