package notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"banking-service/internal/core/domain/entity"
	"banking-service/internal/core/domain/ports"
)

// Service consumes notification events and delivers the rendered
// messages. Delivery is best-effort: a failed send is logged and the
// event is considered handled either way.
type Service struct {
	sink   ports.NotificationSink
	logger *slog.Logger
}

func NewService(sink ports.NotificationSink, logger *slog.Logger) *Service {
	return &Service{sink: sink, logger: logger}
}

func (s *Service) Handle(ctx context.Context, body []byte) {
	var event entity.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.logger.ErrorContext(ctx, "malformed notification event", slog.String("error", err.Error()))
		return
	}

	for _, msg := range Messages(&event) {
		if err := s.sink.Send(ctx, msg.UserID, msg.Text); err != nil {
			s.logger.WarnContext(ctx, "notification delivery failed",
				slog.String("user_id", msg.UserID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.logger.InfoContext(ctx, "notification delivered", slog.String("user_id", msg.UserID.String()))
	}
}
