package controllers

import (
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/services"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/asaplab/asap/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// ManageController handles the professor's rosters and outcomes
type ManageController struct {
	outcomeService services.OutcomeService
}

// NewManageController creates a new ManageController
func NewManageController(outcomeService services.OutcomeService) *ManageController {
	return &ManageController{outcomeService: outcomeService}
}

// Roster shows the enrolled students of a unit
// @Summary Unit roster
// @Tags manage
// @Produce json
// @Security BearerAuth
// @Param unit_id path int true "Unit ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.UnitRosterResponse} "Roster"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Router /prof/manage/{unit_id} [get]
func (c *ManageController) Roster(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	unitID, err := helpers.ParseIDParam(ctx, "unit_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roster, err := c.outcomeService.ListForUnit(ctx.Request.Context(), actor, unitID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.UnitRosterResponse{
		Research: dto.NewResearchResponse(roster.Research),
		Unit:     dto.NewUnitResponse(roster.Unit),
		Records:  dto.NewRecordListResponse(roster.Records),
	}})
}

// RecordOutcomes stores a batch of outcomes. Expects the body decoded by
// middleware.ValidateRequest[dto.RecordOutcomesRequest].
// @Summary Record outcomes
// @Description All rows are written or none. Every invalid row is listed in the error details.
// @Tags manage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param unit_id path int true "Unit ID" Format(int64) minimum(1)
// @Param request body dto.RecordOutcomesRequest true "Outcome rows"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Outcomes recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid rows"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Router /prof/manage/{unit_id} [post]
func (c *ManageController) RecordOutcomes(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	unitID, err := helpers.ParseIDParam(ctx, "unit_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	req, ok := middleware.ValidatedBody[dto.RecordOutcomesRequest](ctx)
	if !ok {
		req = &dto.RecordOutcomesRequest{}
		if !bindJSON(ctx, req) {
			return
		}
	}

	if err := c.outcomeService.RecordOutcomes(ctx.Request.Context(), actor, unitID, req.Entries); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Outcomes recorded"}})
}
