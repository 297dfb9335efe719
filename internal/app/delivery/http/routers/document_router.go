package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachMedicalRecordRoutes(router chi.Router, middlewares *middlewares.Middlewares, documentController *controllers.DocumentController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", documentController.UploadMedicalRecord)
	router.Get("/", documentController.ListMedicalRecords)
	router.Get("/{id}/download", documentController.DownloadMedicalRecord)
	router.Delete("/{id}", documentController.DeleteMedicalRecord)
}

func attachDoctorDocumentRoutes(router chi.Router, middlewares *middlewares.Middlewares, documentController *controllers.DocumentController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", documentController.UploadDoctorDocument)
	router.Get("/", documentController.ListDoctorDocuments)
	router.Get("/{id}/download", documentController.DownloadDoctorDocument)
}
