package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/medibook/medibook-api/internal/email"
	"github.com/medibook/medibook-api/internal/service/booking"
	"github.com/medibook/medibook-api/pkg/logger"
	"github.com/medibook/medibook-api/pkg/messaging"
	"github.com/medibook/medibook-api/pkg/metrics"
)

// Worker consumes booking events from the broker and emails the patient.
type Worker struct {
	broker  messaging.Broker
	emails  email.Service
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewWorker(broker messaging.Broker, emails email.Service, logger *logger.Logger, metrics *metrics.Metrics) *Worker {
	return &Worker{
		broker:  broker,
		emails:  emails,
		logger:  logger,
		metrics: metrics,
	}
}

// Start subscribes to both booking channels and blocks until ctx is done.
func (w *Worker) Start(ctx context.Context) error {
	booked, err := w.broker.Subscribe(ctx, booking.ChannelBooked)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", booking.ChannelBooked, err)
	}
	cancelled, err := w.broker.Subscribe(ctx, booking.ChannelCancelled)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", booking.ChannelCancelled, err)
	}

	w.logger.Info("notification worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification worker shutting down")
			return nil
		case msg, ok := <-booked:
			if !ok {
				return nil
			}
			w.handle(ctx, booking.ChannelBooked, msg)
		case msg, ok := <-cancelled:
			if !ok {
				return nil
			}
			w.handle(ctx, booking.ChannelCancelled, msg)
		}
	}
}

func (w *Worker) handle(ctx context.Context, channel string, payload []byte) {
	var event booking.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		w.metrics.EventsFailed.WithLabelValues(channel).Inc()
		w.logger.Error(err, "failed to decode booking event")
		return
	}
	if event.Appointment == nil {
		w.metrics.EventsFailed.WithLabelValues(channel).Inc()
		return
	}
	w.metrics.EventsProcessed.WithLabelValues(channel).Inc()

	appt := event.Appointment
	to := appt.UserData.Email
	if to == "" {
		return
	}

	var err error
	switch channel {
	case booking.ChannelBooked:
		err = w.emails.SendBookingConfirmation(ctx, to, appt.DocData.Name, appt.SlotDate, appt.SlotTime)
	case booking.ChannelCancelled:
		err = w.emails.SendCancellation(ctx, to, appt.DocData.Name, appt.SlotDate, appt.SlotTime)
	}
	if err != nil {
		w.metrics.EmailsFailed.Inc()
		w.logger.Error(err, "failed to send notification email")
		return
	}
	w.metrics.EmailsSent.Inc()
}
