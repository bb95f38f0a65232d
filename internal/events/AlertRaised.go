package events

import "github.com/maxaizer/job-intel/internal/domain/models"

var AlertRaisedTopic = "AlertRaisedEvent"

type AlertRaised struct {
	UserID int64
	Alert  models.JobAlert
}
