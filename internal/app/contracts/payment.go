package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	Initialize(ctx context.Context, session *models.Session, request *requests.InitializePayment) (*responses.InitializePayment, error)
	Verify(ctx context.Context, session *models.Session, reference string) (*responses.VerifyPayment, error)
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*responses.WebhookResult, error)
	List(ctx context.Context, session *models.Session, query requests.PaymentQuery) (*responses.Page[models.Payment], error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByReference(ctx context.Context, reference string) (*models.Payment, error)
	SetGatewayReference(ctx context.Context, paymentID, gatewayReference string) error
	// UpdateStatusIfPending reports false when the payment already left PENDING.
	// A non-empty gatewayReference replaces the stored one in the same write.
	UpdateStatusIfPending(ctx context.Context, reference, status, gatewayReference string) (bool, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error)
}

type PaymentGatewayService interface {
	InitializeTransaction(ctx context.Context, request *requests.GatewayInitialize) (*responses.GatewayInitialize, error)
	VerifyTransaction(ctx context.Context, reference string) (*responses.GatewayVerify, error)
}
