package application

import (
	"context"
	"strconv"

	"github.com/spycat-agency/service-mission/internal/common/kafka"
	"go.uber.org/zap"
)

const eventSource = "service-mission"

// publishEvent is best effort: a failed publish is logged and never fails
// the operation that produced the event.
func publishEvent(ctx context.Context, producer kafka.Publisher, logger *zap.Logger, topic, eventType string, subject int64, data any) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = strconv.FormatInt(subject, 10)

	if err := producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
