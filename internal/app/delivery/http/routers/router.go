package routers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const compressionLevel = 5

type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Appointment  *controllers.AppointmentController
	Payment      *controllers.PaymentController
	Webhook      *controllers.WebhookController
	Prescription *controllers.PrescriptionController
	Document     *controllers.DocumentController
	Conversation *controllers.ConversationController
	Notification *controllers.NotificationController
	Admin        *controllers.AdminController
	Job          *controllers.JobController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	metricsHandler http.Handler,
	c *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig.App.CorsAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "x-api-key"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.HTTPMetrics)
	router.Use(newCompressor().Handler)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.ErrorHandler)

	router.NotFound(middlewares.NotFound)
	router.MethodNotAllowed(middlewares.MethodNotAllowed)

	if metricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, c.Auth)
			})

			r.Route("/users", func(r chi.Router) {
				attachUserRoutes(r, middlewares, c.Auth)
			})

			r.Route("/patients", func(r chi.Router) {
				attachPatientRoutes(r, middlewares, c.User)
			})

			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, middlewares, c.User)
			})

			r.Route("/hospitals", func(r chi.Router) {
				attachHospitalRoutes(r, c.User)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, c.Appointment)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, middlewares, c.Payment)
			})

			r.Route("/webhooks", func(r chi.Router) {
				attachWebhookRoutes(r, middlewares, c.Webhook)
			})

			r.Route("/prescriptions", func(r chi.Router) {
				attachPrescriptionRoutes(r, middlewares, c.Prescription)
			})

			r.Route("/medical-records", func(r chi.Router) {
				attachMedicalRecordRoutes(r, middlewares, c.Document)
			})

			r.Route("/doctor-documents", func(r chi.Router) {
				attachDoctorDocumentRoutes(r, middlewares, c.Document)
			})

			r.Route("/conversations", func(r chi.Router) {
				attachConversationRoutes(r, middlewares, c.Conversation)
			})

			r.Route("/notifications", func(r chi.Router) {
				attachNotificationRoutes(r, middlewares, c.Notification)
			})

			r.Route("/admin", func(r chi.Router) {
				attachAdminRoutes(r, middlewares, c)
			})

			r.Route("/jobs", func(r chi.Router) {
				attachJobRoutes(r, middlewares, c.Job)
			})
		})
	})
}

func allowedOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// newCompressor compresses JSON bodies, preferring brotli over gzip when the
// client accepts both.
func newCompressor() *chimiddleware.Compressor {
	compressor := chimiddleware.NewCompressor(compressionLevel, "application/json")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return compressor
}
