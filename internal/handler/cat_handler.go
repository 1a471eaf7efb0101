package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/common/response"
)

// CatHandler handles HTTP requests for cat operations.
type CatHandler struct {
	service *application.CatService
}

// NewCatHandler creates a new CatHandler.
func NewCatHandler(service *application.CatService) *CatHandler {
	return &CatHandler{service: service}
}

// RegisterRoutes registers all cat routes.
func (h *CatHandler) RegisterRoutes(r *gin.RouterGroup) {
	cats := r.Group("/cats")
	{
		cats.POST("", h.CreateCat)
		cats.GET("", h.ListCats)
		cats.GET("/:id", h.GetCat)
		cats.DELETE("/:id", h.DeleteCat)
		cats.PATCH("/:id/salary", h.UpdateSalary)
	}
}

// CreateCat handles POST /cats.
func (h *CatHandler) CreateCat(c *gin.Context) {
	var req application.CreateCatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateCat(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListCats handles GET /cats.
func (h *CatHandler) ListCats(c *gin.Context) {
	result, err := h.service.ListCats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetCat handles GET /cats/:id.
func (h *CatHandler) GetCat(c *gin.Context) {
	id, ok := parseID(c, "cat")
	if !ok {
		return
	}

	result, err := h.service.GetCat(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteCat handles DELETE /cats/:id.
func (h *CatHandler) DeleteCat(c *gin.Context) {
	id, ok := parseID(c, "cat")
	if !ok {
		return
	}

	if err := h.service.DeleteCat(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Cat deleted successfully")
}

// UpdateSalary handles PATCH /cats/:id/salary.
func (h *CatHandler) UpdateSalary(c *gin.Context) {
	id, ok := parsePositiveID(c, "cat", "Cat")
	if !ok {
		return
	}

	var req application.UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.UpdateSalary(c.Request.Context(), id, req.Salary); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Cat salary updated successfully")
}
