package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/common/response"
	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
)

// NoteHandler handles HTTP requests for target notes.
type NoteHandler struct {
	service *application.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service *application.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// RegisterRoutes registers all note routes.
func (h *NoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	notes := r.Group("/notes")
	{
		notes.POST("", h.CreateNote)
		notes.GET("", h.ListNotes)
	}
}

// CreateNote handles POST /notes. A missing target is the client's mistake
// here, so it is a 400 rather than a 404.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req application.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateNote(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, missionDomain.ErrTargetNotFound) {
			response.BadRequest(c, "Target does not exist")
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "Note created successfully", "id": result.ID})
}

// ListNotes handles GET /notes.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	result, err := h.service.ListNotes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
