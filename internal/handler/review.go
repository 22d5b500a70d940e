package handler

import (
	"net/http"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/gin-gonic/gin"
)

// CreateReview обработчик для POST /basic/review/. Рейтинг пакета пересчитывается в той же транзакции.
func (h *Handler) CreateReview(c *gin.Context) {
	var r model.Review
	if err := c.ShouldBind(&r); err != nil {
		h.fail(c, bindError(err))
		return
	}
	if err := ownerOrAdmin(c, r.UserID); err != nil {
		h.fail(c, err)
		return
	}
	saved, err := h.ReviewService.Create(c.Request.Context(), &r)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Review Successfully Added.", "resp": saved})
}

// ListReviews возвращает все отзывы.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.ReviewService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetReview возвращает отзыв по ID.
func (h *Handler) GetReview(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	r, err := h.ReviewService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ReviewsByPackage возвращает отзывы пакета.
func (h *Handler) ReviewsByPackage(c *gin.Context) {
	id, err := idParam(c, "package_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	reviews, err := h.ReviewService.ListByPackage(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// MostReviewed обработчик для GET /basic/most/reviewed/.
func (h *Handler) MostReviewed(c *gin.Context) {
	result, err := h.ReviewService.MostReviewed(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateReview меняет отзыв автора (или любой отзыв для администратора).
func (h *Handler) UpdateReview(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	r, err := h.ReviewService.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := ownerOrAdmin(c, r.UserID); err != nil {
		h.fail(c, err)
		return
	}
	author := r.UserID
	if err := c.ShouldBind(r); err != nil {
		h.fail(c, bindError(err))
		return
	}
	r.UserID = author

	saved, err := h.ReviewService.Update(ctx, id, r)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Review updated successfully.", "resp": saved})
}

// DeleteReview удаляет отзыв. Чужой отзыв может удалить только администратор.
func (h *Handler) DeleteReview(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	r, err := h.ReviewService.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := ownerOrAdmin(c, r.UserID); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.ReviewService.Delete(ctx, id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Review deleted successfully."})
}
