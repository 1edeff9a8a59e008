package event

import (
	"context"
	"encoding/json"

	"github.com/stockroom/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingHandler writes every published domain event to the structured log.
// It subscribes as a wildcard handler and serves as the audit trail for
// ledger mutations.
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger.Named("events")}
}

// Handle logs the event with its serialized payload
func (h *LoggingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		payload = []byte("{}")
	}

	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.Int64("aggregate_id", event.AggregateID()),
		zap.ByteString("payload", payload),
	)
	return nil
}

// EventTypes returns an empty slice so the handler receives all events
func (h *LoggingHandler) EventTypes() []string {
	return nil
}

// Ensure LoggingHandler implements EventHandler
var _ shared.EventHandler = (*LoggingHandler)(nil)
