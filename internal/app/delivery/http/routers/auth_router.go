package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/register", authController.Register)
	router.Post("/login", authController.Login)
	router.Get("/verify-email", authController.VerifyEmail)
	router.With(middlewares.Authenticate).Post("/logout", authController.Logout)
}
