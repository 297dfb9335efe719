package controllers

import (
	"context"
	"net/http"
	"strings"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AdminController struct {
	Log             *zap.Logger
	AdminUsecase    contracts.AdminUsecase
	DocumentUsecase contracts.DocumentUsecase
}

func NewAdminController(logger *zap.Logger, adminUsecase contracts.AdminUsecase, documentUsecase contracts.DocumentUsecase) *AdminController {
	return &AdminController{
		Log:             logger,
		AdminUsecase:    adminUsecase,
		DocumentUsecase: documentUsecase,
	}
}

func (ctrl *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := ctrl.AdminUsecase.GetStats(ctx, session)
	if err != nil {
		ctrl.Log.Error("AdminController.Stats AdminUsecase.GetStats error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AdminStatsSuccess, stats)
}

func (ctrl *AdminController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	query := requests.DoctorQuery{
		Status:         utils.GetQueryStatus(r),
		Specialization: strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamSpecialization)),
		Pagination:     utils.BuildPaginationRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	page, err := ctrl.AdminUsecase.ListDoctors(ctx, session, query)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.DoctorListSuccess, paginationResponse(r, query.Pagination, page.Total), page.Items)
}

func (ctrl *AdminController) UpdateDoctorStatus(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	doctorID, err := utils.GetURLParamUUID(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateDoctorStatus)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.Status = strings.ToUpper(strings.TrimSpace(request.Status))
	if err := validate(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	doctor, err := ctrl.AdminUsecase.UpdateDoctorStatus(ctx, session, doctorID, request)
	if err != nil {
		ctrl.Log.Error("AdminController.UpdateDoctorStatus AdminUsecase.UpdateDoctorStatus error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorStatusUpdateSuccess, doctor)
}

func (ctrl *AdminController) UpdateDocumentStatus(w http.ResponseWriter, r *http.Request) {
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

	request := new(requests.UpdateDocumentStatus)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.Status = strings.ToUpper(strings.TrimSpace(request.Status))
	if err := validate(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	document, err := ctrl.DocumentUsecase.UpdateDoctorDocumentStatus(ctx, session, documentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentStatusUpdateSuccess, document)
}
