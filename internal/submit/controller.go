package submit

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/papertrade/tradedash/internal/domain"
	"github.com/papertrade/tradedash/internal/gateway"
	"github.com/papertrade/tradedash/internal/notify"
)

var log = logrus.WithField("module", "submit")

const (
	// SuccessMessage is shown when the backend accepts a trade.
	SuccessMessage = "Trade placed successfully!"
	// genericErrorMessage is shown when the backend rejects a trade
	// without a usable message of its own.
	genericErrorMessage = "Error placing trade"
)

// ErrSubmissionPending means a submission is already in flight through
// this control.
var ErrSubmissionPending = errors.New("a submission is already pending")

// Submitter is the write side of the gateway client.
type Submitter interface {
	SubmitTrade(ctx context.Context, req domain.TradeRequest) error
}

// Refresher schedules an out-of-band refresh of all views.
type Refresher interface {
	Kick()
}

// Controller owns the submission lifecycle: parse and validate the raw
// form, hold the pending state for exactly one in-flight order, surface
// the outcome through the notifier, and nudge the poller once the
// backend has had time to settle the write.
type Controller struct {
	submitter   Submitter
	notifier    *notify.Notifier
	refresher   Refresher
	settleDelay time.Duration
	guard       *inFlightGuard
}

// NewController wires the submission controller. settleDelay is how long
// to wait after an accepted trade before refreshing the views; zero or
// negative falls back to 500ms.
func NewController(submitter Submitter, notifier *notify.Notifier, refresher Refresher, settleDelay time.Duration) *Controller {
	if settleDelay <= 0 {
		settleDelay = 500 * time.Millisecond
	}
	return &Controller{
		submitter:   submitter,
		notifier:    notifier,
		refresher:   refresher,
		settleDelay: settleDelay,
		guard:       newInFlightGuard(1),
	}
}

// Pending reports whether a submission is in flight. The render layer
// disables the submit control while true.
func (c *Controller) Pending() bool {
	return c.guard.InFlight() > 0
}

// Submit validates and submits one order.
//
// Parse failures return a ValidationError before any network call.
// While the call is in flight the control is pending; a concurrent
// Submit returns ErrSubmissionPending. The pending state is always
// released, whichever way the call ends.
func (c *Controller) Submit(ctx context.Context, in FormInput) error {
	req, err := ParseForm(in)
	if err != nil {
		log.WithError(err).Debug("form rejected")
		c.notifier.Show(err.Error(), notify.KindError)
		return err
	}

	if !c.guard.TryAcquire() {
		return ErrSubmissionPending
	}
	defer c.guard.Release()

	c.notifier.Clear()

	if err := c.submitter.SubmitTrade(ctx, req); err != nil {
		c.notifier.Show(rejectionMessage(err), notify.KindError)
		log.WithError(err).WithFields(logrus.Fields{
			"symbol": req.Symbol,
			"side":   req.Side,
		}).Warn("trade rejected")
		return err
	}

	c.notifier.Show(SuccessMessage, notify.KindSuccess)
	log.WithFields(logrus.Fields{
		"symbol":   req.Symbol,
		"side":     req.Side,
		"quantity": req.Quantity,
		"price":    req.Price,
	}).Info("trade placed")

	// Let the backend settle the write before re-reading the views.
	time.AfterFunc(c.settleDelay, c.refresher.Kick)
	return nil
}

// rejectionMessage picks the user-facing text for a failed submission:
// the server's own message when it sent one, a generic fallback
// otherwise.
func rejectionMessage(err error) string {
	var serverErr *gateway.ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return genericErrorMessage
}
