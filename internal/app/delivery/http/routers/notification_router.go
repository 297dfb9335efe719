package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, middlewares *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	router.Use(middlewares.Authenticate)
	router.Get("/", notificationController.List)
	router.Patch("/{id}/read", notificationController.MarkRead)
}
