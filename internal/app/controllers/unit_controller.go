package controllers

import (
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/services"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/asaplab/asap/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// UnitController handles the units under a research
type UnitController struct {
	unitService services.UnitService
}

// NewUnitController creates a new UnitController
func NewUnitController(unitService services.UnitService) *UnitController {
	return &UnitController{unitService: unitService}
}

func (c *UnitController) ids(ctx *gin.Context, withUnit bool) (researchID, unitID int64, ok bool) {
	researchID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, 0, false
	}
	if withUnit {
		unitID, err = helpers.ParseIDParam(ctx, "unit_id")
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return 0, 0, false
		}
	}
	return researchID, unitID, true
}

// Create adds a unit
// @Summary Create a unit
// @Tags unit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research ID" Format(int64) minimum(1)
// @Param request body dto.UnitRequest true "Unit information"
// @Success 201 {object} dto.APIResponse{data=dto.UnitResponse} "Unit created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Router /research/{id} [post]
func (c *UnitController) Create(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	researchID, _, ok := c.ids(ctx, false)
	if !ok {
		return
	}

	var req dto.UnitRequest
	if !bindJSON(ctx, &req) {
		return
	}

	unit, err := c.unitService.Create(ctx.Request.Context(), actor, researchID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewUnitResponse(unit)})
}

// Update replaces a unit
// @Summary Modify a unit
// @Description The capacity cannot drop below the number of enrolled students
// @Tags unit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research ID" Format(int64) minimum(1)
// @Param unit_id path int true "Unit ID" Format(int64) minimum(1)
// @Param request body dto.UnitRequest true "Unit information"
// @Success 200 {object} dto.APIResponse{data=dto.UnitResponse} "Unit updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Router /research/{id}/modify/{unit_id} [put]
func (c *UnitController) Update(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	researchID, unitID, ok := c.ids(ctx, true)
	if !ok {
		return
	}

	var req dto.UnitRequest
	if !bindJSON(ctx, &req) {
		return
	}

	unit, err := c.unitService.Update(ctx.Request.Context(), actor, researchID, unitID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUnitResponse(unit)})
}

// Delete removes a unit
// @Summary Delete a unit
// @Tags unit
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research ID" Format(int64) minimum(1)
// @Param unit_id path int true "Unit ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Unit deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Router /research/{id}/delete/{unit_id} [delete]
func (c *UnitController) Delete(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	researchID, unitID, ok := c.ids(ctx, true)
	if !ok {
		return
	}

	if err := c.unitService.Delete(ctx.Request.Context(), actor, researchID, unitID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Unit deleted"}})
}
