package controllers

import (
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/services"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/asaplab/asap/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// ResearchController handles the research catalog
type ResearchController struct {
	researchService services.ResearchService
	catalogService  services.CatalogService
}

// NewResearchController creates a new ResearchController
func NewResearchController(researchService services.ResearchService, catalogService services.CatalogService) *ResearchController {
	return &ResearchController{
		researchService: researchService,
		catalogService:  catalogService,
	}
}

// ListMine lists the caller's researches with their units
// @Summary List my researches
// @Description Returns every research owned by the calling professor, with unit fill
// @Tags research
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ResearchResponse} "Researches"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a professor"
// @Router /research/create [get]
// @Router /prof/manage [get]
func (c *ResearchController) ListMine(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	researches, err := c.researchService.ListMine(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewResearchListResponse(researches)})
}

// Create adds a research
// @Summary Create a research
// @Description Creates a research owned by the calling professor. Year defaults to the current year.
// @Tags research
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResearchRequest true "Research information"
// @Success 201 {object} dto.APIResponse{data=dto.ResearchResponse} "Research created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not a professor"
// @Router /research/create [post]
func (c *ResearchController) Create(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.ResearchRequest
	if !bindJSON(ctx, &req) {
		return
	}

	research, err := c.researchService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewResearchResponse(research)})
}

// Update replaces an owned research
// @Summary Modify a research
// @Tags research
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research ID" Format(int64) minimum(1)
// @Param request body dto.ResearchRequest true "Research information"
// @Success 200 {object} dto.APIResponse{data=dto.ResearchResponse} "Research updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Router /research/modify/{id} [put]
func (c *ResearchController) Update(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ResearchRequest
	if !bindJSON(ctx, &req) {
		return
	}

	research, err := c.researchService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewResearchResponse(research)})
}

// Delete removes an owned research
// @Summary Delete a research
// @Description Deletes the research with its units and records
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Research deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Router /research/delete/{id} [delete]
func (c *ResearchController) Delete(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.researchService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Research deleted"}})
}

// Detail shows one research with its units
// @Summary Research detail
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ResearchResponse} "Research"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Router /research/info/{id} [get]
func (c *ResearchController) Detail(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	research, err := c.researchService.Detail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewResearchResponse(research)})
}

// Search queries the catalog
// @Summary Search researches
// @Description Case-insensitive substring search. An empty q lists every research.
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param q_option query string false "Field to search" Enums(prof, title, number, year, semester, description)
// @Success 200 {object} dto.APIResponse{data=[]dto.ResearchResponse} "Matching researches"
// @Failure 400 {object} dto.ErrorResponse "Unknown q_option"
// @Router /research/all [get]
func (c *ResearchController) Search(ctx *gin.Context) {
	researches, err := c.catalogService.Search(ctx.Request.Context(), ctx.Query("q"), ctx.Query("q_option"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewResearchListResponse(researches)})
}
