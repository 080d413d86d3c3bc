package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/middleware"
)

// OfferingController handles offering-related operations
type OfferingController struct {
	catalog services.CatalogService
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(catalog services.CatalogService) *OfferingController {
	return &OfferingController{catalog: catalog}
}

// GetAllOfferings lists offerings, optionally only those of one type
// @Summary List offerings
// @Tags offerings
// @Produce json
// @Param type query string false "Course type filter"
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferingResponse}
// @Router /offerings [get]
func (c *OfferingController) GetAllOfferings(ctx *gin.Context) {
	offerings := c.catalog.FilterByType(ctx.Query("type"))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewOfferingResponses(offerings)))
}

// GetOfferingByID retrieves one offering
// @Summary Get an offering
// @Tags offerings
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.OfferingResponse}
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id} [get]
func (c *OfferingController) GetOfferingByID(ctx *gin.Context) {
	offering, err := c.catalog.Offering(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewOfferingResponse(offering)))
}

// CreateOffering adds a course/type pair
// @Summary Create an offering
// @Tags offerings
// @Accept json
// @Produce json
// @Param request body dto.OfferingRequest true "Offering"
// @Success 201 {object} dto.APIResponse{data=dto.OfferingResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Offering already exists"
// @Router /offerings [post]
func (c *OfferingController) CreateOffering(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.OfferingRequest](ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering data")))
		return
	}

	offering, err := c.catalog.AddOffering(ctx.Request.Context(), req.Course, req.Type)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewOfferingResponse(offering)))
}

// UpdateOffering replaces the course and type of an offering
// @Summary Update an offering
// @Tags offerings
// @Accept json
// @Produce json
// @Param id path string true "Offering ID"
// @Param request body dto.OfferingRequest true "New course and type"
// @Success 200 {object} dto.APIResponse{data=dto.OfferingResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id} [put]
func (c *OfferingController) UpdateOffering(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.OfferingRequest](ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering data")))
		return
	}

	offering, err := c.catalog.UpdateOffering(ctx.Request.Context(), ctx.Param("id"), req.Course, req.Type)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewOfferingResponse(offering)))
}

// DeleteOffering removes an offering and the registrations made for it
// @Summary Delete an offering
// @Tags offerings
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /offerings/{id} [delete]
func (c *OfferingController) DeleteOffering(ctx *gin.Context) {
	if err := c.catalog.RemoveOffering(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Offering removed"}))
}
