package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPrescriptionRoutes(router chi.Router, middlewares *middlewares.Middlewares, prescriptionController *controllers.PrescriptionController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", prescriptionController.Create)
	router.Get("/", prescriptionController.List)
	router.Get("/{id}", prescriptionController.Get)
	router.Patch("/{id}", prescriptionController.Update)
}
