package handler

import (
	"net/http"
	"time"

	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/notes"
	"leadcrm_backend/internal/leads/transport"
	"leadcrm_backend/platform/httpkit"
	"leadcrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotesHandler handles HTTP requests for a lead's notes and follow-ups.
type NotesHandler struct {
	notes *notes.Service
	val   *validator.Validator
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(svc *notes.Service, val *validator.Validator) *NotesHandler {
	return &NotesHandler{notes: svc, val: val}
}

// RegisterRoutes adds note routes to a lead-scoped router group.
// Expected route: /leads/:id/notes
func (h *NotesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateNote)
	rg.GET("", h.ListNotes)
	rg.PUT("/:noteId/toggle", h.ToggleNote)
	rg.DELETE("/:noteId", h.DeleteNote)
}

// CreateNote attaches a note to the lead, optionally scheduling a follow-up.
func (h *NotesHandler) CreateNote(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	note, err := h.notes.Add(c.Request.Context(), notes.AddParams{
		LeadID:       leadID,
		Content:      req.Content,
		NoteType:     domain.NoteType(req.NoteType),
		FollowUpDate: req.FollowUpDate,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.NoteFromDomain(note, notes.IsOverdue(note, time.Now())))
}

// ListNotes returns the lead's notes, newest first.
func (h *NotesHandler) ListNotes(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	list, err := h.notes.List(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	now := time.Now()
	out := make([]transport.NoteResponse, len(list))
	for i, note := range list {
		out[i] = transport.NoteFromDomain(note, notes.IsOverdue(note, now))
	}
	httpkit.OK(c, out)
}

// ToggleNote flips the note between open and done.
func (h *NotesHandler) ToggleNote(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	note, err := h.notes.ToggleCompleted(c.Request.Context(), noteID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.NoteFromDomain(note, notes.IsOverdue(note, time.Now())))
}

// DeleteNote removes a note.
func (h *NotesHandler) DeleteNote(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if httpkit.HandleError(c, h.notes.Delete(c.Request.Context(), noteID)) {
		return
	}

	httpkit.NoContent(c)
}
