package v1

import (
	"github.com/fintrack-app/backend/internal/config"
	"github.com/fintrack-app/backend/internal/mailer"
)

var (
	cfg  config.Config
	mail *mailer.Sender
)

// Configure sets the configuration and the mail sender used by the handlers.
// It must be called before any route is served.
//
// mailSender may be nil when mail is not configured; the handlers needing it
// respond with an error in that case.
func Configure(c config.Config, mailSender *mailer.Sender) {
	cfg = c
	mail = mailSender
}
