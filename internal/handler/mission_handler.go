package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/common/response"
)

// MissionHandler handles HTTP requests for missions and their targets.
type MissionHandler struct {
	service *application.MissionService
}

// NewMissionHandler creates a new MissionHandler.
func NewMissionHandler(service *application.MissionService) *MissionHandler {
	return &MissionHandler{service: service}
}

// RegisterRoutes registers mission and target routes.
func (h *MissionHandler) RegisterRoutes(r *gin.RouterGroup) {
	missions := r.Group("/missions")
	{
		missions.POST("", h.CreateMission)
		missions.GET("", h.ListMissions)
		missions.GET("/stats", h.MissionStats)
		missions.GET("/:id", h.GetMission)
		missions.DELETE("/:id", h.DeleteMission)
		missions.PATCH("/:id/assign-cat", h.AssignCat)
	}

	r.PATCH("/targets/:id/status", h.UpdateTargetStatus)
}

// CreateMission handles POST /missions.
func (h *MissionHandler) CreateMission(c *gin.Context) {
	var req application.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateMission(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMissions handles GET /missions.
func (h *MissionHandler) ListMissions(c *gin.Context) {
	result, err := h.service.ListMissions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetMission handles GET /missions/:id.
func (h *MissionHandler) GetMission(c *gin.Context) {
	id, ok := parseID(c, "mission")
	if !ok {
		return
	}

	result, err := h.service.GetMission(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteMission handles DELETE /missions/:id. Nothing is removed: the
// mission and its targets are cancelled.
func (h *MissionHandler) DeleteMission(c *gin.Context) {
	id, ok := parseID(c, "mission")
	if !ok {
		return
	}

	if err := h.service.DeleteMission(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Mission deleted successfully")
}

// AssignCat handles PATCH /missions/:id/assign-cat.
func (h *MissionHandler) AssignCat(c *gin.Context) {
	id, ok := parsePositiveID(c, "mission", "Mission")
	if !ok {
		return
	}

	var req application.AssignCatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.AssignCat(c.Request.Context(), id, req.CatID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Cat assigned to mission successfully")
}

// MissionStats handles GET /missions/stats.
func (h *MissionHandler) MissionStats(c *gin.Context) {
	stats, err := h.service.GetMissionStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// UpdateTargetStatus handles PATCH /targets/:id/status.
func (h *MissionHandler) UpdateTargetStatus(c *gin.Context) {
	id, ok := parsePositiveID(c, "target", "Target")
	if !ok {
		return
	}

	var req application.UpdateTargetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateTargetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message":          "Target status updated successfully",
		"mission_id":       result.MissionID,
		"mission_finished": result.MissionFinished,
	})
}
