package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"noteworthy/internal/app"
	"noteworthy/internal/model"
	"noteworthy/internal/transport/http/middleware"
	"noteworthy/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=64"`
	LastName  *string `json:"last_name" binding:"omitempty,max=64"`
}

type DeleteUserRequest struct {
	Password string `json:"password"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func userDetailsBody(user *model.User) gin.H {
	return gin.H{
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"email":       user.Email,
		"date_joined": user.DateJoined,
	}
}

func (h *UserHandler) Details(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	user, err := h.userService.Details(userID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "fetch user details failed")
		return
	}

	c.JSON(http.StatusOK, userDetailsBody(user))
}

// Update changes first/last name only; email and join date are read-only.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.userService.UpdateNames(userID, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "update user details failed")
		return
	}

	c.JSON(http.StatusOK, userDetailsBody(user))
}

// Delete removes the caller's account after re-checking the password.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.userService.DeleteAccount(userID, req.Password); err != nil {
		switch {
		case errors.Is(err, app.ErrPasswordRequired), errors.Is(err, app.ErrWrongPassword):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "delete user failed")
		}
		return
	}

	response.Message(c, http.StatusOK, "User deleted successfully")
}
