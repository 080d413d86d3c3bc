package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/middleware"
)

// NameController serves one of the plain name lists: course types or courses.
// Both lists share the same endpoints and rules.
type NameController struct {
	list   func() []string
	add    func(ctx context.Context, name string) error
	rename func(ctx context.Context, oldName, newName string) error
	remove func(ctx context.Context, name string) error
}

// NewCourseTypeController creates a NameController for course types
func NewCourseTypeController(catalog services.CatalogService) *NameController {
	return &NameController{
		list:   catalog.CourseTypes,
		add:    catalog.AddCourseType,
		rename: catalog.RenameCourseType,
		remove: catalog.RemoveCourseType,
	}
}

// NewCourseController creates a NameController for courses
func NewCourseController(catalog services.CatalogService) *NameController {
	return &NameController{
		list:   catalog.Courses,
		add:    catalog.AddCourse,
		rename: catalog.RenameCourse,
		remove: catalog.RemoveCourse,
	}
}

// List returns every name in insertion order
// @Summary List course types or courses
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /course-types [get]
// @Router /courses [get]
func (c *NameController) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.list()))
}

// Create appends a new name
// @Summary Add a course type or course
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.NameRequest true "Name to add"
// @Success 201 {object} dto.APIResponse{data=dto.NameResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Name already exists"
// @Router /course-types [post]
// @Router /courses [post]
func (c *NameController) Create(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.NameRequest](ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")))
		return
	}

	if err := c.add(ctx.Request.Context(), req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NameResponse{Name: req.Name}))
}

// Rename replaces :name with the name in the body, in place
// @Summary Rename a course type or course
// @Tags catalog
// @Accept json
// @Produce json
// @Param name path string true "Current name"
// @Param request body dto.NameRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.NameResponse}
// @Failure 404 {object} dto.ErrorResponse "Name not found"
// @Failure 409 {object} dto.ErrorResponse "New name already exists"
// @Router /course-types/{name} [put]
// @Router /courses/{name} [put]
func (c *NameController) Rename(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.NameRequest](ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")))
		return
	}

	if err := c.rename(ctx.Request.Context(), ctx.Param("name"), req.Name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NameResponse{Name: req.Name}))
}

// Delete removes :name together with the offerings that use it
// @Summary Remove a course type or course
// @Tags catalog
// @Produce json
// @Param name path string true "Name"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Name not found"
// @Router /course-types/{name} [delete]
// @Router /courses/{name} [delete]
func (c *NameController) Delete(ctx *gin.Context) {
	name := ctx.Param("name")
	if err := c.remove(ctx.Request.Context(), name); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: name + " removed"}))
}
