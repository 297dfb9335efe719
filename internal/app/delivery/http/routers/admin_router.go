package routers

import (
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

// attachAdminRoutes only authenticates; the role check happens in each usecase
// against the authorization policy.
func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, c *Controllers) {
	router.Use(middlewares.Authenticate)
	router.Get("/stats", c.Admin.Stats)
	router.Get("/doctors", c.Admin.ListDoctors)
	router.Patch("/doctors/{id}/status", c.Admin.UpdateDoctorStatus)
	router.Patch("/doctor-documents/{id}/status", c.Admin.UpdateDocumentStatus)
	router.Get("/appointments", c.Appointment.List)
	router.Get("/payments", c.Payment.List)
	router.Post("/hospitals", c.User.CreateHospital)
}
