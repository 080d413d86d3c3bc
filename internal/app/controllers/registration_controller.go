package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/middleware"
)

// RegistrationController handles student registrations
type RegistrationController struct {
	catalog       services.CatalogService
	registrations services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(catalog services.CatalogService, registrations services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		catalog:       catalog,
		registrations: registrations,
	}
}

// GetAllRegistrations lists registrations in the order they were made
// @Summary List registrations
// @Tags registrations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.RegistrationResponse}
// @Router /registrations [get]
func (c *RegistrationController) GetAllRegistrations(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewRegistrationResponses(c.registrations.Registrations())))
}

// Register enrolls a student in an offering picked from the catalog
// @Summary Register a student
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body dto.RegistrationRequest true "Student and offering"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Router /registrations [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.RegistrationRequest](ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")))
		return
	}

	offering, err := c.catalog.Offering(req.OfferingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	registration, err := c.registrations.Register(ctx.Request.Context(), req.Student, &offering)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewRegistrationResponse(registration)))
}
