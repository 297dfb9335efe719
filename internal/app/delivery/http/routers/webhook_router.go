package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWebhookRoutes(router chi.Router, middlewares *middlewares.Middlewares, webhookController *controllers.WebhookController) {
	router.With(middlewares.BodyBuffer).Post("/payment-gateway", webhookController.PaymentGateway)
}
