package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bloggyhq/bloggy/pkg/helpers"
	"github.com/bloggyhq/bloggy/pkg/mailer"
	mailtpl "github.com/bloggyhq/bloggy/pkg/mailer/templates"
)

// Notifier sends transactional email, fire-and-forget. A failed send is
// logged and never rolls back the write that triggered it.
type Notifier interface {
	SendWelcome(ctx context.Context, to, name, tempPassword string)
	SendPostPublished(ctx context.Context, to, name string)
}

// QueueNotifier enqueues email jobs on RabbitMQ; the email worker renders
// the templates and delivers via Mailgun.
type QueueNotifier struct {
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	FrontendURL string
	Enabled     bool
}

func NewQueueNotifier(pub *helpers.RabbitPublisher, logger *logrus.Logger, frontendURL string, enabled bool) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Logger: logger, FrontendURL: frontendURL, Enabled: enabled}
}

func (n *QueueNotifier) enqueue(ctx context.Context, job mailer.EmailJob) {
	if !n.Enabled || n.Pub == nil {
		if n.Logger != nil {
			n.Logger.WithField("template", job.Template).Debug("email sending disabled, job dropped")
		}
		return
	}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{
			"to":       job.To,
			"template": job.Template,
		}).Warn("failed to enqueue email job")
	}
}

func (n *QueueNotifier) SendWelcome(ctx context.Context, to, name, tempPassword string) {
	n.enqueue(ctx, mailer.EmailJob{
		To:       to,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"Name":         name,
			"TempPassword": tempPassword,
			"FrontendURL":  n.FrontendURL,
		},
	})
}

func (n *QueueNotifier) SendPostPublished(ctx context.Context, to, name string) {
	n.enqueue(ctx, mailer.EmailJob{
		To:       to,
		Template: mailtpl.PostPublished,
		Data: map[string]any{
			"Name":        name,
			"PostURL":     n.FrontendURL + "/home",
			"FrontendURL": n.FrontendURL,
		},
	})
}

var _ Notifier = (*QueueNotifier)(nil)
