package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"noteworthy/internal/app"
	"noteworthy/internal/transport/http/middleware"
	"noteworthy/internal/transport/http/response"
)

type NoteHandler struct {
	noteService *app.NoteService
}

// NoteRequest serves both create and partial update; the service decides
// which fields are required per operation.
type NoteRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=200"`
	Body     *string `json:"body"`
	Category *string `json:"category"`
}

func NewNoteHandler(noteService *app.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	notes, err := h.noteService.List(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list notes failed")
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	note, err := h.noteService.Create(userID, app.NoteInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
	})
	if err != nil {
		h.writeNoteError(c, err, "create note failed")
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	note, err := h.noteService.Get(userID, c.Param("slug"))
	if err != nil {
		h.writeNoteError(c, err, "fetch note failed")
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	note, err := h.noteService.Update(userID, c.Param("slug"), app.NoteInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
	})
	if err != nil {
		h.writeNoteError(c, err, "update note failed")
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	if err := h.noteService.Delete(userID, c.Param("slug")); err != nil {
		h.writeNoteError(c, err, "delete note failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// Search filters the caller's notes; an empty result set is 204, which the
// front-end treats as "no matches" rather than an error.
func (h *NoteHandler) Search(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	notes, err := h.noteService.Search(userID, c.Query("search"))
	if err != nil {
		if errors.Is(err, app.ErrEmptyQuery) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "search notes failed")
		return
	}

	if len(notes) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) writeNoteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrNoteNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrNotOwner):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
