package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// multipartOverhead leaves room for the form boundaries and text fields on
// top of the file itself.
const multipartOverhead = 1 << 20

type DocumentController struct {
	Log             *zap.Logger
	InternalConfig  *config.InternalConfig
	DocumentUsecase contracts.DocumentUsecase
}

func NewDocumentController(logger *zap.Logger, internalConfig *config.InternalConfig, documentUsecase contracts.DocumentUsecase) *DocumentController {
	return &DocumentController{
		Log:             logger,
		InternalConfig:  internalConfig,
		DocumentUsecase: documentUsecase,
	}
}

// parseUpload reads the multipart form into an UploadDocument. The caller
// closes the returned file.
func (ctrl *DocumentController) parseUpload(w http.ResponseWriter, r *http.Request) (*requests.UploadDocument, multipart.File, error) {
	maxSize := ctrl.InternalConfig.Storage.MaxUploadSizeInBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, exceptions.ErrFileTooLarge(err, r.ContentLength, maxSize)
		}
		return nil, nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	file, header, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		return nil, nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	request := &requests.UploadDocument{
		Title:       strings.TrimSpace(r.FormValue(constvars.FormFieldTitle)),
		PatientID:   strings.TrimSpace(r.FormValue(constvars.FormFieldPatientID)),
		FileName:    header.Filename,
		ContentType: strings.ToLower(strings.TrimSpace(header.Header.Get(constvars.HeaderContentType))),
		Size:        header.Size,
		File:        file,
	}
	if err := validate(request); err != nil {
		file.Close()
		return nil, nil, err
	}
	return request, file, nil
}

func (ctrl *DocumentController) UploadMedicalRecord(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request, file, err := ctrl.parseUpload(w, r)
	if err != nil {
		ctrl.Log.Error("DocumentController.UploadMedicalRecord failed to parse upload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	record, err := ctrl.DocumentUsecase.UploadMedicalRecord(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("DocumentController.UploadMedicalRecord DocumentUsecase.UploadMedicalRecord error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DocumentUploadSuccess, record)
}

func (ctrl *DocumentController) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	query := requests.MedicalRecordQuery{
		PatientID:  strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamPatientID)),
		Pagination: utils.BuildPaginationRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page, err := ctrl.DocumentUsecase.ListMedicalRecords(ctx, session, query)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.DocumentListSuccess, paginationResponse(r, query.Pagination, page.Total), page.Items)
}

func (ctrl *DocumentController) DownloadMedicalRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	recordID, err := utils.GetURLParamUUID(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	url, err := ctrl.DocumentUsecase.DownloadMedicalRecord(ctx, session, recordID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentDownloadSuccess, url)
}

func (ctrl *DocumentController) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	recordID, err := utils.GetURLParamUUID(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := ctrl.DocumentUsecase.DeleteMedicalRecord(ctx, session, recordID); err != nil {
		ctrl.Log.Error("DocumentController.DeleteMedicalRecord DocumentUsecase.DeleteMedicalRecord error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingDocumentIDKey, recordID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentDeleteSuccess, nil)
}

func (ctrl *DocumentController) UploadDoctorDocument(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request, file, err := ctrl.parseUpload(w, r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	document, err := ctrl.DocumentUsecase.UploadDoctorDocument(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("DocumentController.UploadDoctorDocument DocumentUsecase.UploadDoctorDocument error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DocumentUploadSuccess, document)
}

func (ctrl *DocumentController) ListDoctorDocuments(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	query := requests.DoctorDocumentQuery{
		Status:     utils.GetQueryStatus(r),
		Pagination: utils.BuildPaginationRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page, err := ctrl.DocumentUsecase.ListDoctorDocuments(ctx, session, query)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.DocumentListSuccess, paginationResponse(r, query.Pagination, page.Total), page.Items)
}

func (ctrl *DocumentController) DownloadDoctorDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	documentID, err := utils.GetURLParamUUID(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	url, err := ctrl.DocumentUsecase.DownloadDoctorDocument(ctx, session, documentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentDownloadSuccess, url)
}
