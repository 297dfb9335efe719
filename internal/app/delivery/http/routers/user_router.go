package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.With(middlewares.Authenticate).Get("/me", authController.Me)
}

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	router.With(middlewares.Authenticate).Put("/me", userController.UpdatePatientProfile)
}

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	router.With(middlewares.Authenticate).Put("/me", userController.UpdateDoctorProfile)
	router.Get("/", userController.ListDoctors)
	router.Get("/{id}", userController.GetDoctor)
}

func attachHospitalRoutes(router chi.Router, userController *controllers.UserController) {
	router.Get("/", userController.ListHospitals)
}
