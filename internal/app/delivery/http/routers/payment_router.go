package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.Use(middlewares.Authenticate)
	router.Post("/initialize", paymentController.Initialize)
	router.Get("/verify/{reference}", paymentController.Verify)
	router.Get("/", paymentController.List)
}
