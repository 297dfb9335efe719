package notifications

import (
	"context"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	Policy                 contracts.AuthorizationPolicy
	Log                    *zap.Logger
}

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	authorizationPolicy contracts.AuthorizationPolicy,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepository,
		Policy:                 authorizationPolicy,
		Log:                    logger,
	}
}

func (uc *notificationUsecase) List(ctx context.Context, session *models.Session, pagination requests.Pagination) (*responses.Page[models.Notification], error) {
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceNotification, constvars.ActionList, constvars.OwnershipSelf); err != nil {
		return nil, err
	}
	items, total, err := uc.NotificationRepository.ListByUser(ctx, session.UserID, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.Notification]{Items: items, Total: total}, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	ownerID, err := uc.NotificationRepository.FindOwner(ctx, notificationID)
	if err != nil {
		return err
	}
	if ownerID == "" {
		return exceptions.ErrResourceNotFound(nil, constvars.ResourceNotification, notificationID)
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceNotification, constvars.ActionUpdate, policy.Ownership(ownerID == session.UserID)); err != nil {
		return err
	}
	return uc.NotificationRepository.MarkRead(ctx, notificationID, session.UserID)
}
