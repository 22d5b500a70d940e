package handler

import (
	"fmt"
	"net/http"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/service"
	"github.com/anupgautam/trekkers-encounter-backend/internal/voucher"

	"github.com/gin-gonic/gin"
)

// CreateBooking обработчик для POST /basic/package_booking/.
func (h *Handler) CreateBooking(c *gin.Context) {
	var in model.BookingInput
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, bindError(err))
		return
	}
	if err := ownerOrAdmin(c, in.UserID); err != nil {
		h.fail(c, err)
		return
	}
	saved, err := h.BookingService.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Package Booking Successfully Added.", "resp": saved})
}

// ListBookings обработчик для GET /basic/package_booking/?status=.
func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.BookingService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking отдает бронирование его владельцу или администратору.
func (h *Handler) GetBooking(c *gin.Context) {
	b, ok := h.ownBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingStatus обработчик для PATCH /basic/package_booking/:postId.
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, apperr.Wrap(apperr.KindValidation, "Invalid request body.", err))
		return
	}
	in, err := service.ParseStatusInput(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	saved, err := h.BookingService.UpdateStatus(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Package Booking updated successfully.", "resp": saved})
}

// DeleteBooking удаляет бронирование.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.BookingService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Package Booking deleted successfully."})
}

// BookingVoucher отдает PDF-ваучер подтвержденного бронирования.
func (h *Handler) BookingVoucher(c *gin.Context) {
	b, ok := h.ownBooking(c)
	if !ok {
		return
	}
	if b.Status != model.StatusApproved {
		h.fail(c, apperr.Validation("Voucher is available only for approved bookings."))
		return
	}
	pdf, err := voucher.Render(*b, fmt.Sprintf("%s/basic/package_booking/%d", h.BaseURL, b.ID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="voucher-%d.pdf"`, b.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) ownBooking(c *gin.Context) (*model.BookingDetail, bool) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	b, err := h.BookingService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	if err := ownerOrAdmin(c, b.User.ID); err != nil {
		h.fail(c, err)
		return nil, false
	}
	return b, true
}
