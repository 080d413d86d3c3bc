package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/controllers"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseTypeController *controllers.NameController,
	courseController *controllers.NameController,
	offeringController *controllers.OfferingController,
	registrationController *controllers.RegistrationController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	registerNameRoutes(v1.Group("/course-types"), courseTypeController)
	registerNameRoutes(v1.Group("/courses"), courseController)

	offerings := v1.Group("/offerings")
	{
		offerings.GET("", offeringController.GetAllOfferings)
		offerings.GET("/:id", offeringController.GetOfferingByID)
		offerings.POST("", middleware.ValidateRequest[dto.OfferingRequest](), offeringController.CreateOffering)
		offerings.PUT("/:id", middleware.ValidateRequest[dto.OfferingRequest](), offeringController.UpdateOffering)
		offerings.DELETE("/:id", offeringController.DeleteOffering)
	}

	registrations := v1.Group("/registrations")
	{
		registrations.GET("", registrationController.GetAllRegistrations)
		registrations.POST("", middleware.ValidateRequest[dto.RegistrationRequest](), registrationController.Register)
	}
}

func registerNameRoutes(group *gin.RouterGroup, controller *controllers.NameController) {
	group.GET("", controller.List)
	group.POST("", middleware.ValidateRequest[dto.NameRequest](), controller.Create)
	group.PUT("/:name", middleware.ValidateRequest[dto.NameRequest](), controller.Rename)
	group.DELETE("/:name", controller.Delete)
}
