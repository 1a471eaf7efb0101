package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/spycat-agency/service-mission/internal/application"
	"github.com/spycat-agency/service-mission/internal/common/domain"
	"github.com/spycat-agency/service-mission/internal/common/kafka"
	"github.com/spycat-agency/service-mission/internal/domain/events"
	missionDomain "github.com/spycat-agency/service-mission/internal/domain/mission"
	"go.uber.org/zap"
)

// TargetStatusUpdater is the slice of MissionService the consumer needs.
type TargetStatusUpdater interface {
	UpdateTargetStatus(ctx context.Context, targetID int64, status missionDomain.Status) (*application.TargetStatusDTO, error)
}

// TargetReportConsumer applies target status reports sent by field agents.
type TargetReportConsumer struct {
	consumer *kafka.Consumer
	service  TargetStatusUpdater
	logger   *zap.Logger
}

// NewTargetReportConsumer creates a new TargetReportConsumer.
func NewTargetReportConsumer(
	brokers []string,
	groupID string,
	service TargetStatusUpdater,
	logger *zap.Logger,
) *TargetReportConsumer {
	return &TargetReportConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, events.TopicTargetReports, logger),
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming target reports. This blocks until the context is cancelled.
func (c *TargetReportConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *TargetReportConsumer) Close() error {
	return c.consumer.Close()
}

func (c *TargetReportConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from target reports topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.TargetStatusReported:
		return c.handleStatusReported(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled target report type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *TargetReportConsumer) handleStatusReported(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.TargetStatusReportedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse TargetStatusReportedEvent data", zap.Error(err))
		return nil
	}

	status, err := missionDomain.ParseStatus(evt.Status)
	if err != nil {
		c.logger.Warn("discarding target report with unknown status",
			zap.Int64("target_id", evt.TargetID),
			zap.String("status", evt.Status),
		)
		return nil
	}

	c.logger.Info("processing target status report",
		zap.Int64("target_id", evt.TargetID),
		zap.String("status", status.String()),
	)

	result, err := c.service.UpdateTargetStatus(ctx, evt.TargetID, status)
	switch {
	case err == nil:
	case domain.IsNotFound(err):
		c.logger.Warn("target report for unknown target",
			zap.Int64("target_id", evt.TargetID),
		)
		return nil
	case domain.IsConflict(err), domain.IsValidation(err):
		c.logger.Warn("target report rejected",
			zap.Int64("target_id", evt.TargetID),
			zap.String("reason", err.Error()),
		)
		return nil
	default:
		// Reports are consumed at most once, so a failed one is lost here.
		c.logger.Error("dropping target status report",
			zap.Int64("target_id", evt.TargetID),
			zap.String("status", status.String()),
			zap.Error(err),
		)
		return nil
	}

	c.logger.Info("target status report applied",
		zap.Int64("target_id", evt.TargetID),
		zap.Int64("mission_id", result.MissionID),
		zap.Bool("mission_finished", result.MissionFinished),
	)
	return nil
}
