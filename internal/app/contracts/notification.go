package contracts

import (
	"carepulse-service/internal/pkg/dto/requests"
	"context"
)

type NotificationPublisher interface {
	PublishSMS(ctx context.Context, message *requests.SMSNotification) error
}
