package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"noteworthy/internal/app"
	"noteworthy/internal/transport/http/response"
)

type PasswordResetHandler struct {
	resetService *app.PasswordResetService
}

type SendResetEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

func NewPasswordResetHandler(resetService *app.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

// SendEmail dispatches the reset link. Mail transport failures surface
// as 500.
func (h *PasswordResetHandler) SendEmail(c *gin.Context) {
	var req SendResetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.resetService.SendResetEmail(req.Email); err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user with this email does not exist")
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "failed to send password reset email")
		}
		return
	}

	response.Message(c, http.StatusOK, "Password reset email sent successfully")
}

func (h *PasswordResetHandler) Validate(c *gin.Context) {
	userID, ok := parseUID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, "user does not exist")
		return
	}

	if err := h.resetService.ValidateToken(userID, c.Param("token")); err != nil {
		h.writeResetError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Token is valid")
}

func (h *PasswordResetHandler) Reset(c *gin.Context) {
	userID, ok := parseUID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, "user does not exist")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "new password is required")
		return
	}

	if err := h.resetService.ResetPassword(userID, c.Param("token"), req.NewPassword); err != nil {
		h.writeResetError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Password reset successfully")
}

func (h *PasswordResetHandler) writeResetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user does not exist")
	case errors.Is(err, app.ErrBadResetToken):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "password reset failed")
	}
}

func parseUID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("uid"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
