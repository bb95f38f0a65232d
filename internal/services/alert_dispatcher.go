package services

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-intel/internal/domain/models"
	"github.com/maxaizer/job-intel/internal/events"
	"github.com/maxaizer/job-intel/internal/logger"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Notifier delivers a single alert to its user. Implementations live at the
// application edge; the engine only knows this interface.
type Notifier interface {
	Notify(ctx context.Context, userID int64, alert models.JobAlert) error
}

// LogNotifier writes alerts to the log. It stands in for a real delivery
// channel in deployments that only want the analysis side.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, userID int64, alert models.JobAlert) error {
	log.Infof("alert for user %d [%s, priority %d]: %s", userID, alert.Type, alert.Priority, alert.Message)
	return nil
}

// AlertDispatcher consumes AlertRaised events and forwards them to the
// notifier, throttled so a burst of matches cannot flood the channel.
type AlertDispatcher struct {
	bus      EventBus.Bus
	notifier Notifier
	limiter  *rate.Limiter
}

func NewAlertDispatcher(bus EventBus.Bus, notifier Notifier, maxPerSecond float32) (*AlertDispatcher, error) {

	d := &AlertDispatcher{
		bus:      bus,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(maxPerSecond), 1),
	}

	err := bus.SubscribeAsync(events.AlertRaisedTopic, d.onAlertRaised, false)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func (d *AlertDispatcher) Stop() {
	if err := d.bus.Unsubscribe(events.AlertRaisedTopic, d.onAlertRaised); err != nil {
		log.Errorf("failed to unsubscribe alert dispatcher: %v", err)
	}
}

func (d *AlertDispatcher) onAlertRaised(event events.AlertRaised) {

	if err := d.limiter.Wait(context.Background()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDispatch).
			Errorf("rate limiter interrupted: %v", err)
		return
	}

	if err := d.notifier.Notify(context.Background(), event.UserID, event.Alert); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDispatch).
			Errorf("failed to deliver alert to user %d: %v", event.UserID, err)
	}
}
