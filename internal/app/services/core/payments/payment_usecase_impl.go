package payments

import (
	"context"
	"fmt"
	"math"
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

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const paymentLockTTL = 10 * time.Second

type paymentUsecase struct {
	PaymentRepository     contracts.PaymentRepository
	AppointmentRepository contracts.AppointmentRepository
	PatientRepository     contracts.PatientRepository
	UserRepository        contracts.UserRepository
	PaymentGateway        contracts.PaymentGatewayService
	InboxWriter           contracts.InboxWriter
	LockService           contracts.LockerService
	Policy                contracts.AuthorizationPolicy
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	userRepository contracts.UserRepository,
	paymentGateway contracts.PaymentGatewayService,
	inboxWriter contracts.InboxWriter,
	lockService contracts.LockerService,
	authorizationPolicy contracts.AuthorizationPolicy,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		PaymentRepository:     paymentRepository,
		AppointmentRepository: appointmentRepository,
		PatientRepository:     patientRepository,
		UserRepository:        userRepository,
		PaymentGateway:        paymentGateway,
		InboxWriter:           inboxWriter,
		LockService:           lockService,
		Policy:                authorizationPolicy,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

// Initialize records a PENDING payment whose reference is its own id and
// opens a checkout with the gateway. A gateway failure leaves the PENDING row
// in place.
func (uc *paymentUsecase) Initialize(ctx context.Context, session *models.Session, request *requests.InitializePayment) (*responses.InitializePayment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.Initialize called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	payerID := request.UserID
	if payerID == "" {
		payerID = session.UserID
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePayment, constvars.ActionCreate, policy.Ownership(payerID == session.UserID)); err != nil {
		return nil, err
	}

	payer, err := uc.UserRepository.FindByID(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if payer == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "user", payerID)
	}

	if request.AppointmentID != nil {
		if err := uc.checkAppointmentOwnership(ctx, session, payerID, *request.AppointmentID); err != nil {
			return nil, err
		}
	}

	currency := strings.ToUpper(request.Currency)
	if currency == "" {
		currency = constvars.PaymentDefaultCurrency
	}

	paymentID := uuid.NewString()
	payment := &models.Payment{
		ID:            paymentID,
		UserID:        payerID,
		AppointmentID: request.AppointmentID,
		Amount:        request.Amount,
		Currency:      currency,
		Method:        constvars.PaymentMethodPaystack,
		Status:        constvars.PaymentStatusPending,
		Reference:     paymentID,
		Description:   request.Description,
	}
	if err := uc.PaymentRepository.Create(ctx, payment); err != nil {
		return nil, err
	}

	metadata := map[string]string{"payment_id": payment.ID}
	if payment.AppointmentID != nil {
		metadata["appointment_id"] = *payment.AppointmentID
	}
	checkout, err := uc.PaymentGateway.InitializeTransaction(ctx, &requests.GatewayInitialize{
		Email:       payer.Email,
		Amount:      int64(math.Round(payment.Amount * constvars.PaymentMinorUnitMultiplier)),
		Currency:    payment.Currency,
		Reference:   payment.Reference,
		CallbackURL: uc.InternalConfig.PaymentGateway.CallbackUrl,
		Metadata:    metadata,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.Initialize gateway initialize failed, payment stays pending",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentRefKey, payment.Reference),
			zap.Error(err),
		)
		return nil, err
	}

	if checkout.AccessCode != "" {
		if err := uc.PaymentRepository.SetGatewayReference(ctx, payment.ID, checkout.AccessCode); err != nil {
			uc.Log.Warn("paymentUsecase.Initialize failed to store gateway reference",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, payment.ID),
				zap.Error(err),
			)
		}
	}

	utils.LogBusinessEvent(uc.Log, "payment_initialized", requestID,
		zap.String(constvars.LoggingPaymentIDKey, payment.ID),
		zap.Float64("amount", payment.Amount),
		zap.String("currency", payment.Currency),
	)
	return &responses.InitializePayment{
		AuthorizationURL: checkout.AuthorizationURL,
		Reference:        payment.Reference,
		PaymentID:        payment.ID,
	}, nil
}

func (uc *paymentUsecase) checkAppointmentOwnership(ctx context.Context, session *models.Session, payerID, appointmentID string) error {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceAppointment, appointmentID)
	}
	patient, err := uc.PatientRepository.FindByUserID(ctx, payerID)
	if err != nil {
		return err
	}
	if patient == nil || patient.ID != appointment.PatientID {
		return exceptions.ErrPermissionDenied(nil, session.Role, constvars.ResourceAppointment, constvars.ActionRead, constvars.OwnershipOther)
	}
	return nil
}

// Verify settles a payment from the gateway's view of the transaction. The
// linked appointment is left untouched.
func (uc *paymentUsecase) Verify(ctx context.Context, session *models.Session, reference string) (*responses.VerifyPayment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.Verify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentRefKey, reference),
	)

	payment, err := uc.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePayment, constvars.ActionRead, policy.Ownership(payment.UserID == session.UserID)); err != nil {
		return nil, err
	}
	if payment.Status != constvars.PaymentStatusPending {
		return &responses.VerifyPayment{Status: payment.Status, Payment: payment}, nil
	}

	key := fmt.Sprintf(constvars.RedisKeyPaymentLockFmt, reference)
	acquired, token, err := uc.LockService.TryLock(ctx, key, paymentLockTTL)
	if err != nil {
		uc.Log.Warn("paymentUsecase.Verify lock unavailable, relying on conditional update",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	} else if !acquired {
		// another verification of the same reference is in flight
		return &responses.VerifyPayment{Status: payment.Status, Payment: payment}, nil
	} else {
		defer func() {
			if err := uc.LockService.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
				uc.Log.Warn("paymentUsecase.Verify failed to release lock", zap.String(constvars.LoggingRedisKey, key), zap.Error(err))
			}
		}()
	}

	transaction, err := uc.PaymentGateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	status, settled := settledStatus(transaction.Status)
	if !settled {
		uc.Log.Info("paymentUsecase.Verify transaction not settled yet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentRefKey, reference),
			zap.String("gateway_status", transaction.Status),
		)
		return &responses.VerifyPayment{Status: payment.Status, Payment: payment}, nil
	}

	if _, err := uc.applyStatus(ctx, payment, status, transaction.GatewayID); err != nil {
		return nil, err
	}

	updated, err := uc.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return &responses.VerifyPayment{Status: updated.Status, Payment: updated}, nil
}

// HandleWebhook applies charge events signed with the gateway secret. Events
// that cannot be matched are acknowledged without any write.
func (uc *paymentUsecase) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*responses.WebhookResult, error) {
	requestID := utils.GetRequestID(ctx)

	if signature == "" || !utils.VerifyHMACSHA512(uc.InternalConfig.PaymentGateway.SecretKey, rawBody, signature) {
		utils.LogSecurityEvent(uc.Log, "payment_webhook_signature_rejected", requestID, utils.SeverityMedium)
		return nil, exceptions.ErrInvalidWebhookSignature(nil)
	}

	event := gjson.GetBytes(rawBody, "event").String()
	reference := gjson.GetBytes(rawBody, "data.reference").String()
	result := &responses.WebhookResult{Event: event, Reference: reference}

	uc.Log.Info("paymentUsecase.HandleWebhook called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event),
		zap.String(constvars.LoggingPaymentRefKey, reference),
	)

	var status string
	switch event {
	case constvars.PaystackEventChargeSuccess:
		status = constvars.PaymentStatusSuccess
	case constvars.PaystackEventChargeFailed:
		status = constvars.PaymentStatusFailed
	default:
		return result, nil
	}

	payment, err := uc.PaymentRepository.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		uc.Log.Warn("paymentUsecase.HandleWebhook unknown reference acknowledged",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentRefKey, reference),
		)
		return result, nil
	}

	applied, err := uc.applyStatus(ctx, payment, status, gjson.GetBytes(rawBody, "data.id").String())
	if err != nil {
		return nil, err
	}
	result.Applied = applied
	return result, nil
}

func (uc *paymentUsecase) List(ctx context.Context, session *models.Session, query requests.PaymentQuery) (*responses.Page[models.Payment], error) {
	ownership := constvars.OwnershipSelf
	filter := models.PaymentFilter{
		Status: strings.ToUpper(query.Status),
		Limit:  query.PageSize,
		Offset: query.Offset(),
	}
	if session.Role == constvars.RoleAdmin {
		ownership = constvars.OwnershipOther
	} else {
		filter.UserID = session.UserID
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePayment, constvars.ActionList, ownership); err != nil {
		return nil, err
	}

	items, total, err := uc.PaymentRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.Payment]{Items: items, Total: total}, nil
}

// applyStatus moves a PENDING payment to its settled status exactly once and
// records the payer's inbox row on success. A successful settlement also
// stores the gateway's transaction id, which is unique across SUCCESS rows.
func (uc *paymentUsecase) applyStatus(ctx context.Context, payment *models.Payment, status, gatewayID string) (bool, error) {
	if status != constvars.PaymentStatusSuccess {
		gatewayID = ""
	}
	applied, err := uc.PaymentRepository.UpdateStatusIfPending(ctx, payment.Reference, status, gatewayID)
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	if status == constvars.PaymentStatusSuccess {
		uc.InboxWriter.Notify(ctx, payment.UserID,
			constvars.InboxTitlePaymentReceived,
			fmt.Sprintf(constvars.InboxMessagePaymentReceived, payment.Amount, payment.Currency),
			constvars.NotificationTypePayment,
		)
	}
	utils.LogBusinessEvent(uc.Log, "payment_settled", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPaymentRefKey, payment.Reference),
		zap.String("status", status),
	)
	return true, nil
}

func (uc *paymentUsecase) findByReference(ctx context.Context, reference string) (*models.Payment, error) {
	payment, err := uc.PaymentRepository.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourcePayment, reference)
	}
	return payment, nil
}

func settledStatus(gatewayStatus string) (string, bool) {
	switch strings.ToLower(gatewayStatus) {
	case constvars.PaystackTransactionSuccess:
		return constvars.PaymentStatusSuccess, true
	case constvars.PaystackTransactionFailed, constvars.PaystackTransactionAbandoned, constvars.PaystackTransactionReversed:
		return constvars.PaymentStatusFailed, true
	}
	return "", false
}
