package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/pkg/mailer"
	mailtpl "github.com/oksasatya/roundup-savings/pkg/mailer/templates"
)

// Notifier turns domain events into email jobs. Failures are logged and
// swallowed; a nil Notifier sends nothing.
type Notifier struct {
	Publisher Publisher
	Brand     mailtpl.Brand
	Logger    *logrus.Logger
	Timeout   time.Duration
}

func NewNotifier(pub Publisher, brand mailtpl.Brand, logger *logrus.Logger) *Notifier {
	return &Notifier{Publisher: pub, Brand: brand, Logger: logger, Timeout: 3 * time.Second}
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if n == nil || n.Publisher == nil || u == nil {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.Brand, u.Name, u.Email, mailtpl.WithTime(u.CreatedAt)),
	})
}

// RoundupReceipt reports a committed post; u carries the total after it.
func (n *Notifier) RoundupReceipt(ctx context.Context, u *entity.User, t *entity.Transaction) {
	if n == nil || n.Publisher == nil || u == nil || t == nil {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.RoundupReceipt,
		Data: mailtpl.NewRoundupReceiptData(n.Brand, u.Name, u.Email,
			mailtpl.WithReceipt(
				t.Description,
				t.Amount.StringFixed(2),
				t.AppliedRounding.StringFixed(2),
				t.SavedAmount.StringFixed(2),
				u.TotalSaved.StringFixed(2),
				u.Currency,
			),
			mailtpl.WithTime(t.CreatedAt),
		),
	})
}

func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := n.Publisher.PublishJSON(c, job); err != nil {
		metricSideEffects.Add("email_"+job.Template, 1)
		if n.Logger != nil {
			n.Logger.WithError(err).WithField("template", job.Template).Warn("enqueue email failed")
		}
	}
}
