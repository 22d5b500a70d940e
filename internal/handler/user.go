package handler

import (
	"net/http"
	"strconv"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/gin-gonic/gin"
)

// Signup обработчик для POST /user/signup/.
func (h *Handler) Signup(c *gin.Context) {
	var in model.SignupInput
	if err := c.ShouldBind(&in); err != nil {
		h.fail(c, bindError(err))
		return
	}
	user, err := h.AuthService.Signup(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "User Successfully Created.", "resp": user})
}

// Verify обработчик для GET /user/verify?token=.
func (h *Handler) Verify(c *gin.Context) {
	if err := h.AuthService.Verify(c.Request.Context(), c.Query("token")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Email verified successfully."})
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login выдает пару токенов по email и паролю.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}
	result, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Refresh обработчик для POST /user/token/refresh/.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}
	pair, err := h.AuthService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

type forgotRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword обработчик для POST /user/forgot/password/.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}
	if err := h.AuthService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password reset link sent to your email."})
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword обработчик для POST /user/change/password/. Токен берется из тела или из query.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Wrap(apperr.KindValidation, "Invalid request body.", err))
		return
	}
	if req.Token == "" {
		req.Token = c.Query("token")
	}
	if err := h.AuthService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password successfully updated."})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ChangePassword обработчик для POST /user/change/new/password (нужен access-токен).
func (h *Handler) ChangePassword(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		h.fail(c, apperr.Unauthorized("Authorization token is required."))
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}
	if err := h.AuthService.ChangePassword(c.Request.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password updated successfully."})
}

// ListUsers обработчик для GET /user/user?is_verified=true|false.
func (h *Handler) ListUsers(c *gin.Context) {
	var verified *bool
	if raw, ok := c.GetQuery("is_verified"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.fail(c, apperr.Validation("Invalid is_verified parameter. It must be true or false."))
			return
		}
		verified = &v
	}
	users, err := h.UserService.List(c.Request.Context(), verified)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser возвращает профиль владельцу или администратору.
func (h *Handler) GetUser(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := ownerOrAdmin(c, id); err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.UserService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser меняет профиль пользователя.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var upd model.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.fail(c, apperr.Wrap(apperr.KindValidation, "Invalid request body.", err))
		return
	}
	claims, _ := claimsFrom(c)
	user, err := h.UserService.Update(c.Request.Context(), claims, id, upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type adminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// SetAdmin обработчик для PATCH /user/admin/:postId.
func (h *Handler) SetAdmin(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req adminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}
	user, err := h.UserService.SetAdmin(c.Request.Context(), id, *req.IsAdmin)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
