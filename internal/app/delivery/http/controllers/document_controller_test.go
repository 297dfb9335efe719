package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingDocumentUsecase struct {
	upload  *requests.UploadDocument
	content []byte
}

func (c *capturingDocumentUsecase) UploadMedicalRecord(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*models.MedicalRecord, error) {
	c.upload = request
	content, err := io.ReadAll(request.File)
	if err != nil {
		return nil, err
	}
	c.content = content
	return &models.MedicalRecord{ID: "mr-1", Title: request.Title}, nil
}

func (c *capturingDocumentUsecase) ListMedicalRecords(ctx context.Context, session *models.Session, query requests.MedicalRecordQuery) (*responses.Page[models.MedicalRecord], error) {
	return &responses.Page[models.MedicalRecord]{}, nil
}

func (c *capturingDocumentUsecase) DownloadMedicalRecord(ctx context.Context, session *models.Session, recordID string) (*responses.DocumentURL, error) {
	return &responses.DocumentURL{}, nil
}

func (c *capturingDocumentUsecase) DeleteMedicalRecord(ctx context.Context, session *models.Session, recordID string) error {
	return nil
}

func (c *capturingDocumentUsecase) UploadDoctorDocument(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*models.DoctorDocument, error) {
	c.upload = request
	return &models.DoctorDocument{ID: "dd-1"}, nil
}

func (c *capturingDocumentUsecase) ListDoctorDocuments(ctx context.Context, session *models.Session, query requests.DoctorDocumentQuery) (*responses.Page[models.DoctorDocument], error) {
	return &responses.Page[models.DoctorDocument]{}, nil
}

func (c *capturingDocumentUsecase) DownloadDoctorDocument(ctx context.Context, session *models.Session, documentID string) (*responses.DocumentURL, error) {
	return &responses.DocumentURL{}, nil
}

func (c *capturingDocumentUsecase) UpdateDoctorDocumentStatus(ctx context.Context, session *models.Session, documentID string, request *requests.UpdateDocumentStatus) (*models.DoctorDocument, error) {
	return &models.DoctorDocument{ID: documentID, Status: request.Status}, nil
}

func multipartBody(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if withFile {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, constvars.FormFieldFile, "lab-results.pdf"))
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newUploadRequest(t *testing.T, fields map[string]string, withFile bool, session *models.Session) *http.Request {
	body, contentType := multipartBody(t, fields, withFile)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/medical-records", body)
	req.Header.Set("Content-Type", contentType)
	if session != nil {
		req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session))
	}
	return req
}

func TestDocumentController_UploadMedicalRecord(t *testing.T) {
	internalConfig := &config.InternalConfig{Storage: config.AppStorage{MaxUploadSizeInBytes: 1 << 20}}
	session := &models.Session{UserID: "pu-1", Role: constvars.RolePatient}

	t.Run("parses the multipart form", func(t *testing.T) {
		usecase := &capturingDocumentUsecase{}
		ctrl := NewDocumentController(zap.NewNop(), internalConfig, usecase)

		rr := httptest.NewRecorder()
		ctrl.UploadMedicalRecord(rr, newUploadRequest(t, map[string]string{
			constvars.FormFieldTitle: "  Lab results ",
		}, true, session))

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, usecase.upload)
		assert.Equal(t, "Lab results", usecase.upload.Title)
		assert.Equal(t, "lab-results.pdf", usecase.upload.FileName)
		assert.Equal(t, "application/pdf", usecase.upload.ContentType)
		assert.Equal(t, int64(len("%PDF-1.4 test")), usecase.upload.Size)
		assert.Equal(t, "%PDF-1.4 test", string(usecase.content))
	})

	t.Run("missing file is a bad request", func(t *testing.T) {
		usecase := &capturingDocumentUsecase{}
		ctrl := NewDocumentController(zap.NewNop(), internalConfig, usecase)

		rr := httptest.NewRecorder()
		ctrl.UploadMedicalRecord(rr, newUploadRequest(t, map[string]string{
			constvars.FormFieldTitle: "Lab results",
		}, false, session))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, usecase.upload)
	})

	t.Run("missing title fails validation", func(t *testing.T) {
		usecase := &capturingDocumentUsecase{}
		ctrl := NewDocumentController(zap.NewNop(), internalConfig, usecase)

		rr := httptest.NewRecorder()
		ctrl.UploadMedicalRecord(rr, newUploadRequest(t, nil, true, session))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, usecase.upload)
	})

	t.Run("missing session is unauthorized", func(t *testing.T) {
		usecase := &capturingDocumentUsecase{}
		ctrl := NewDocumentController(zap.NewNop(), internalConfig, usecase)

		rr := httptest.NewRecorder()
		ctrl.UploadMedicalRecord(rr, newUploadRequest(t, map[string]string{
			constvars.FormFieldTitle: "Lab results",
		}, true, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminController_UpdateDocumentStatusNormalizesStatus(t *testing.T) {
	usecase := &capturingDocumentUsecase{}
	ctrl := NewAdminController(zap.NewNop(), nil, usecase)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/doctor-documents/x/status", bytes.NewBufferString(`{"status":" approved "}`))
	req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_SESSION_DATA_KEY, &models.Session{UserID: "au-1", Role: constvars.RoleAdmin}))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(constvars.URLParamID, "7d3c1b9e-8a51-4d7e-9a2b-5c6f7e8d9a01")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	ctrl.UpdateDocumentStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), constvars.DocumentStatusApproved)
}
