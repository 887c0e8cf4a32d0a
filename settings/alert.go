package settings

import log "github.com/sirupsen/logrus"

// Alert is the message handed to an Alerter.
type Alert struct {
	Message string `json:"message"`
}

// Alerter receives user-facing error notifications.
type Alerter interface {
	Error(Alert)
}

// AlerterFunc adapts a function to an Alerter.
type AlerterFunc func(Alert)

func (f AlerterFunc) Error(a Alert) {
	f(a)
}

// LogAlerter writes alerts to the log.
type LogAlerter struct{}

func (LogAlerter) Error(a Alert) {
	log.WithFields(log.Fields{"message": a.Message}).Error("Alert")
}
