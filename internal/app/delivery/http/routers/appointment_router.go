package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", appointmentController.Create)
	router.Get("/", appointmentController.List)
	router.Get("/{id}", appointmentController.Get)
	router.Patch("/{id}", appointmentController.Update)
	router.Put("/{id}", appointmentController.Update)
	router.Delete("/{id}", appointmentController.Cancel)
	router.Get("/{id}/meeting", appointmentController.Meeting)
	router.Post("/{id}/meeting", appointmentController.Meeting)
}
