package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachConversationRoutes(router chi.Router, middlewares *middlewares.Middlewares, conversationController *controllers.ConversationController) {
	router.Use(middlewares.Authenticate)
	router.Get("/", conversationController.List)
	router.Get("/{id}/messages", conversationController.ListMessages)
	router.Post("/{id}/messages", conversationController.SendMessage)
}
