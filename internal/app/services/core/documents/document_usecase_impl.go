package documents

import (
	"context"
	"fmt"
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

var allowedContentTypes = map[string]bool{
	constvars.MIMEApplicationPDF: true,
	constvars.MIMEImagePNG:       true,
	constvars.MIMEImageJPEG:      true,
}

type documentUsecase struct {
	MedicalRecordRepository  contracts.MedicalRecordRepository
	DoctorDocumentRepository contracts.DoctorDocumentRepository
	PatientRepository        contracts.PatientRepository
	DoctorRepository         contracts.DoctorRepository
	AppointmentRepository    contracts.AppointmentRepository
	StorageService           contracts.StorageService
	InboxWriter              contracts.InboxWriter
	Policy                   contracts.AuthorizationPolicy
	StorageConfig            config.AppStorage
	Log                      *zap.Logger
	now                      func() time.Time
}

func NewDocumentUsecase(
	medicalRecordRepository contracts.MedicalRecordRepository,
	doctorDocumentRepository contracts.DoctorDocumentRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	storageService contracts.StorageService,
	inboxWriter contracts.InboxWriter,
	authorizationPolicy contracts.AuthorizationPolicy,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DocumentUsecase {
	return &documentUsecase{
		MedicalRecordRepository:  medicalRecordRepository,
		DoctorDocumentRepository: doctorDocumentRepository,
		PatientRepository:        patientRepository,
		DoctorRepository:         doctorRepository,
		AppointmentRepository:    appointmentRepository,
		StorageService:           storageService,
		InboxWriter:              inboxWriter,
		Policy:                   authorizationPolicy,
		StorageConfig:            internalConfig.Storage,
		Log:                      logger,
		now:                      time.Now,
	}
}

func (uc *documentUsecase) checkFile(request *requests.UploadDocument) error {
	contentType := strings.ToLower(strings.TrimSpace(request.ContentType))
	if !allowedContentTypes[contentType] {
		return exceptions.ErrInvalidFileType(nil, request.ContentType)
	}
	if limit := uc.StorageConfig.MaxUploadSizeInBytes; limit > 0 && request.Size > limit {
		return exceptions.ErrFileTooLarge(nil, request.Size, limit)
	}
	request.ContentType = contentType
	return nil
}

// recordPatient resolves which patient a medical record operation targets and
// whether the caller owns that relationship. Patients act on themselves;
// doctors act on patients they have an appointment with.
func (uc *documentUsecase) recordPatient(ctx context.Context, session *models.Session, patientID string) (*models.Patient, bool, error) {
	switch session.Role {
	case constvars.RolePatient:
		patient, err := uc.PatientRepository.FindByUserID(ctx, session.UserID)
		if err != nil {
			return nil, false, err
		}
		if patient == nil {
			return nil, false, exceptions.ErrRoleProfileNotFound(nil, session.Role)
		}
		return patient, patientID == "" || patientID == patient.ID, nil
	case constvars.RoleDoctor:
		if patientID == "" {
			return nil, false, exceptions.ErrPatientIDRequired(nil, session.Role)
		}
		doctor, err := uc.DoctorRepository.FindByUserID(ctx, session.UserID)
		if err != nil {
			return nil, false, err
		}
		if doctor == nil {
			return nil, false, exceptions.ErrRoleProfileNotFound(nil, session.Role)
		}
		patient, err := uc.PatientRepository.FindByID(ctx, patientID)
		if err != nil {
			return nil, false, err
		}
		if patient == nil {
			return nil, false, exceptions.ErrResourceNotFound(nil, constvars.ResourcePatient, patientID)
		}
		related, err := uc.AppointmentRepository.ExistsBetween(ctx, patient.ID, doctor.ID)
		if err != nil {
			return nil, false, err
		}
		return patient, related, nil
	}
	return nil, false, nil
}

func (uc *documentUsecase) UploadMedicalRecord(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*models.MedicalRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("documentUsecase.UploadMedicalRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if err := uc.Policy.Authorize(session.Role, constvars.ResourceMedicalRecord, constvars.ActionCreate, constvars.OwnershipSelf); err != nil {
		return nil, err
	}
	if err := uc.checkFile(request); err != nil {
		return nil, err
	}

	patient, owned, err := uc.recordPatient(ctx, session, request.PatientID)
	if err != nil {
		return nil, err
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceMedicalRecord, constvars.ActionCreate, policy.Ownership(owned)); err != nil {
		return nil, err
	}

	objectKey := utils.GenerateObjectKey(constvars.StorageFolderMedicalRecords, patient.ID, request.FileName, uc.now())
	fileURL, err := uc.StorageService.Upload(ctx, objectKey, request.File, request.Size, request.ContentType)
	if err != nil {
		return nil, err
	}

	record := &models.MedicalRecord{
		PatientID:  patient.ID,
		UploadedBy: session.UserID,
		Title:      request.Title,
		FileURL:    fileURL,
		FileType:   request.ContentType,
		FileName:   request.FileName,
		Size:       request.Size,
	}
	if err := uc.MedicalRecordRepository.Create(ctx, record); err != nil {
		uc.removeObject(ctx, objectKey)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "medical_record_uploaded", requestID,
		zap.String(constvars.LoggingDocumentIDKey, record.ID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return record, nil
}

func (uc *documentUsecase) ListMedicalRecords(ctx context.Context, session *models.Session, query requests.MedicalRecordQuery) (*responses.Page[models.MedicalRecord], error) {
	filter := models.MedicalRecordFilter{
		Limit:  query.PageSize,
		Offset: query.Offset(),
	}

	if session.Role == constvars.RoleAdmin {
		if err := uc.Policy.Authorize(session.Role, constvars.ResourceMedicalRecord, constvars.ActionList, constvars.OwnershipOther); err != nil {
			return nil, err
		}
		filter.PatientID = query.PatientID
	} else {
		if err := uc.Policy.Authorize(session.Role, constvars.ResourceMedicalRecord, constvars.ActionList, constvars.OwnershipSelf); err != nil {
			return nil, err
		}
		patient, owned, err := uc.recordPatient(ctx, session, query.PatientID)
		if err != nil {
			return nil, err
		}
		if err := uc.Policy.Authorize(session.Role, constvars.ResourceMedicalRecord, constvars.ActionList, policy.Ownership(owned)); err != nil {
			return nil, err
		}
		filter.PatientID = patient.ID
	}

	items, total, err := uc.MedicalRecordRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.MedicalRecord]{Items: items, Total: total}, nil
}

func (uc *documentUsecase) findMedicalRecord(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	record, err := uc.MedicalRecordRepository.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceMedicalRecord, recordID)
	}
	return record, nil
}

func (uc *documentUsecase) DownloadMedicalRecord(ctx context.Context, session *models.Session, recordID string) (*responses.DocumentURL, error) {
	record, err := uc.findMedicalRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	owned := false
	if session.Role != constvars.RoleAdmin {
		_, owned, err = uc.recordPatient(ctx, session, record.PatientID)
		if err != nil {
			return nil, err
		}
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceMedicalRecord, constvars.ActionDownload, policy.Ownership(owned)); err != nil {
		return nil, err
	}
	return uc.downloadURL(ctx, record.FileURL, record.FileName), nil
}

// DeleteMedicalRecord removes the row first; the stored object is removed on
// a best effort basis afterwards.
func (uc *documentUsecase) DeleteMedicalRecord(ctx context.Context, session *models.Session, recordID string) error {
	requestID := utils.GetRequestID(ctx)
	record, err := uc.findMedicalRecord(ctx, recordID)
	if err != nil {
		return err
	}

	owned := false
	if session.Role == constvars.RolePatient {
		_, owned, err = uc.recordPatient(ctx, session, record.PatientID)
		if err != nil {
			return err
		}
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceMedicalRecord, constvars.ActionDelete, policy.Ownership(owned)); err != nil {
		return err
	}

	if err := uc.MedicalRecordRepository.Delete(ctx, record.ID); err != nil {
		return err
	}
	if objectKey, ok := uc.StorageService.StoragePath(record.FileURL); ok {
		uc.removeObject(ctx, objectKey)
	}

	utils.LogBusinessEvent(uc.Log, "medical_record_deleted", requestID,
		zap.String(constvars.LoggingDocumentIDKey, record.ID),
	)
	return nil
}

func (uc *documentUsecase) UploadDoctorDocument(ctx context.Context, session *models.Session, request *requests.UploadDocument) (*models.DoctorDocument, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("documentUsecase.UploadDoctorDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctorDocument, constvars.ActionCreate, constvars.OwnershipSelf); err != nil {
		return nil, err
	}
	if err := uc.checkFile(request); err != nil {
		return nil, err
	}
	doctor, err := uc.sessionDoctor(ctx, session)
	if err != nil {
		return nil, err
	}

	objectKey := utils.GenerateObjectKey(constvars.StorageFolderDoctorDocuments, doctor.ID, request.FileName, uc.now())
	fileURL, err := uc.StorageService.Upload(ctx, objectKey, request.File, request.Size, request.ContentType)
	if err != nil {
		return nil, err
	}

	document := &models.DoctorDocument{
		DoctorID: doctor.ID,
		Title:    request.Title,
		FileURL:  fileURL,
		FileType: request.ContentType,
		FileName: request.FileName,
		Size:     request.Size,
		Status:   constvars.DocumentStatusPending,
	}
	if err := uc.DoctorDocumentRepository.Create(ctx, document); err != nil {
		uc.removeObject(ctx, objectKey)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "doctor_document_uploaded", requestID,
		zap.String(constvars.LoggingDocumentIDKey, document.ID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	return document, nil
}

func (uc *documentUsecase) ListDoctorDocuments(ctx context.Context, session *models.Session, query requests.DoctorDocumentQuery) (*responses.Page[models.DoctorDocument], error) {
	filter := models.DoctorDocumentFilter{
		Status: strings.ToUpper(query.Status),
		Limit:  query.PageSize,
		Offset: query.Offset(),
	}

	if session.Role == constvars.RoleAdmin {
		if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctorDocument, constvars.ActionList, constvars.OwnershipOther); err != nil {
			return nil, err
		}
	} else {
		if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctorDocument, constvars.ActionList, constvars.OwnershipSelf); err != nil {
			return nil, err
		}
		doctor, err := uc.sessionDoctor(ctx, session)
		if err != nil {
			return nil, err
		}
		filter.DoctorID = doctor.ID
	}

	items, total, err := uc.DoctorDocumentRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.DoctorDocument]{Items: items, Total: total}, nil
}

func (uc *documentUsecase) DownloadDoctorDocument(ctx context.Context, session *models.Session, documentID string) (*responses.DocumentURL, error) {
	document, err := uc.findDoctorDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	owned := false
	if session.Role == constvars.RoleDoctor {
		doctor, err := uc.sessionDoctor(ctx, session)
		if err != nil {
			return nil, err
		}
		owned = doctor.ID == document.DoctorID
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctorDocument, constvars.ActionDownload, policy.Ownership(owned)); err != nil {
		return nil, err
	}
	return uc.downloadURL(ctx, document.FileURL, document.FileName), nil
}

// UpdateDoctorDocumentStatus records an admin review and tells the doctor.
func (uc *documentUsecase) UpdateDoctorDocumentStatus(ctx context.Context, session *models.Session, documentID string, request *requests.UpdateDocumentStatus) (*models.DoctorDocument, error) {
	requestID := utils.GetRequestID(ctx)
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctorDocument, constvars.ActionUpdateStatus, constvars.OwnershipOther); err != nil {
		return nil, err
	}

	document, err := uc.findDoctorDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	status := strings.ToUpper(request.Status)
	if err := uc.DoctorDocumentRepository.UpdateStatus(ctx, document.ID, status); err != nil {
		return nil, err
	}
	document.Status = status
	document.UpdatedAt = uc.now()

	doctor, err := uc.DoctorRepository.FindByID(ctx, document.DoctorID)
	if err != nil {
		uc.Log.Warn("documentUsecase.UpdateDoctorDocumentStatus failed to load doctor for inbox",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if doctor != nil {
		uc.InboxWriter.Notify(ctx, doctor.UserID,
			constvars.InboxTitleDocumentReviewed,
			fmt.Sprintf(constvars.InboxMessageDocumentReviewed, document.Title, strings.ToLower(status)),
			constvars.NotificationTypeDocument,
		)
	}

	utils.LogBusinessEvent(uc.Log, "doctor_document_reviewed", requestID,
		zap.String(constvars.LoggingDocumentIDKey, document.ID),
		zap.String("status", status),
	)
	return document, nil
}

func (uc *documentUsecase) findDoctorDocument(ctx context.Context, documentID string) (*models.DoctorDocument, error) {
	document, err := uc.DoctorDocumentRepository.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceDoctorDocument, documentID)
	}
	return document, nil
}

func (uc *documentUsecase) sessionDoctor(ctx context.Context, session *models.Session) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrRoleProfileNotFound(nil, session.Role)
	}
	return doctor, nil
}

// downloadURL signs stored bucket URLs. Anything the storage layer does not
// recognise, or fails to sign, is returned as stored.
func (uc *documentUsecase) downloadURL(ctx context.Context, storedURL, fileName string) *responses.DocumentURL {
	objectKey, ok := uc.StorageService.StoragePath(storedURL)
	if !ok {
		return &responses.DocumentURL{URL: storedURL}
	}
	signed, err := uc.StorageService.GetSignedURL(ctx, objectKey, uc.StorageConfig.SignedUrlExpiry, fileName)
	if err != nil {
		uc.Log.Warn("documentUsecase.downloadURL signing failed, returning stored url",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return &responses.DocumentURL{URL: storedURL}
	}
	return &responses.DocumentURL{URL: signed, Signed: true}
}

func (uc *documentUsecase) removeObject(ctx context.Context, objectKey string) {
	if err := uc.StorageService.Delete(context.WithoutCancel(ctx), objectKey); err != nil {
		uc.Log.Warn("documentUsecase failed to remove stored object",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingObjectKey, objectKey),
			zap.Error(err),
		)
	}
}
