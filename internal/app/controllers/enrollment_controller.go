package controllers

import (
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/services"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/asaplab/asap/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// EnrollmentController handles the student side of enrollment
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Catalog lists what the student can enroll in
// @Summary Enrollment page
// @Description Every research with its units, plus the caller's records
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentCatalogResponse} "Catalog"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Router /research/enroll [get]
func (c *EnrollmentController) Catalog(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	catalog, err := c.enrollmentService.Catalog(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.EnrollmentCatalogResponse{
		Researches: dto.NewResearchListResponse(catalog.Researches),
		MyRecords:  dto.NewRecordListResponse(catalog.MyRecords),
	}})
}

// Enroll takes a seat in a unit
// @Summary Enroll in a unit
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID" Format(int64) minimum(1)
// @Success 201 {object} dto.APIResponse{data=dto.RecordResponse} "Enrolled"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or unit full"
// @Router /research/enroll/{id} [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	unitID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	record, err := c.enrollmentService.Enroll(ctx.Request.Context(), actor, unitID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewRecordResponse(record)})
}

// Cancel releases a seat
// @Summary Cancel an enrollment
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.UnitResponse} "Cancelled; the freed unit"
// @Failure 403 {object} dto.ErrorResponse "Record belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /research/cancel/{id} [post]
func (c *EnrollmentController) Cancel(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	recordID, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	unit, err := c.enrollmentService.Cancel(ctx.Request.Context(), actor, recordID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewUnitResponse(unit)})
}

// MyRecords lists the caller's enrollments
// @Summary My research records
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RecordResponse} "Records with outcomes"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Router /student/records [get]
func (c *EnrollmentController) MyRecords(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	records, err := c.enrollmentService.MyRecords(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewRecordListResponse(records)})
}
