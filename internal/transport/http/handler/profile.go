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

type ProfileHandler struct {
	profileService *app.ProfileService
}

func NewProfileHandler(profileService *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func profileBody(profile *model.Profile, imageURL string) gin.H {
	return gin.H{
		"user":      profile.UserID,
		"image":     profile.Image,
		"image_url": imageURL,
	}
}

// Get returns the profile, creating it on first access.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	profile, imageURL, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "fetch profile failed")
		return
	}

	c.JSON(http.StatusOK, profileBody(profile, imageURL))
}

// Replace takes a multipart "image" file and swaps it in as the profile
// picture.
func (h *ProfileHandler) Replace(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "cannot read image file")
		return
	}
	defer file.Close()

	profile, imageURL, err := h.profileService.ReplaceImage(
		c.Request.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "upload profile image failed")
		return
	}

	c.JSON(http.StatusOK, profileBody(profile, imageURL))
}

// Clear removes the image reference; the profile record persists.
func (h *ProfileHandler) Clear(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	if err := h.profileService.ClearImage(c.Request.Context(), userID); err != nil {
		if errors.Is(err, app.ErrNoImage) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "delete profile image failed")
		return
	}

	response.Message(c, http.StatusOK, "Profile image deleted successfully")
}
