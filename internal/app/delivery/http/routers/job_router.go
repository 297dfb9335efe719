package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachJobRoutes(router chi.Router, middlewares *middlewares.Middlewares, jobController *controllers.JobController) {
	router.With(middlewares.RequireJobAPIKey).Post("/appointment-reminders", jobController.AppointmentReminders)
}
