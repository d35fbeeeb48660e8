package controllers

import (
	"log"
	"net/http"
	"strings"

	"flatly-backend/models"
	"flatly-backend/services"
	"flatly-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// GET /api/bookings
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:id
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var dto models.BookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctrl.BookingSvc.Create(dto)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// PUT /api/bookings/:id
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var dto models.BookingUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctrl.BookingSvc.Update(id, dto)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DELETE /api/bookings/:id
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/bookings/:id/cancel
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Cancel(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func requireUserEmail(c *gin.Context) (string, bool) {
	email := strings.TrimSpace(c.Query("userEmail"))
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "userEmail is required")
		return "", false
	}
	return email, true
}

// GET /api/bookings/active?userEmail=
func (ctrl *BookingController) GetActiveBookings(c *gin.Context) {
	email, ok := requireUserEmail(c)
	if !ok {
		return
	}
	bookings, err := ctrl.BookingSvc.ActiveByUserEmail(email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/active/flats?userEmail=
func (ctrl *BookingController) GetActiveFlats(c *gin.Context) {
	email, ok := requireUserEmail(c)
	if !ok {
		return
	}
	flats, err := ctrl.BookingSvc.ActiveFlatsByUserEmail(email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flats)
}
