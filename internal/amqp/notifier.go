package amqp

import (
	"context"

	"ledger/internal/ledger"
	"ledger/internal/log"
)

const defaultQueueSize = 256

// Publisher is satisfied by *Client.
type Publisher interface {
	Publish(ctx context.Context, msg *ChangeMessage) error
}

// Subscriber is satisfied by *ledger.Store.
type Subscriber interface {
	Subscribe(fn func(ledger.Change)) (cancel func())
}

// Notifier forwards ledger changes to a Publisher from its own goroutine.
// The mutation that produced a change has already been persisted, so a
// failed or dropped publish is logged and otherwise ignored.
type Notifier struct {
	pub    Publisher
	logger *log.Logger
	queue  chan ledger.Change
}

func NewNotifier(pub Publisher, logger *log.Logger, queueSize int) *Notifier {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = log.Wrap(nil, log.ComponentAMQP)
	} else {
		logger = logger.WithComponent(log.ComponentAMQP)
	}
	return &Notifier{pub: pub, logger: logger, queue: make(chan ledger.Change, queueSize)}
}

// Attach subscribes the notifier to s.
func (n *Notifier) Attach(s Subscriber) (detach func()) {
	return s.Subscribe(n.Notify)
}

// Notify enqueues ch without blocking. When the queue is full the change
// is dropped.
func (n *Notifier) Notify(ch ledger.Change) {
	select {
	case n.queue <- ch:
	default:
		n.logger.Warn("Notification queue full, dropping change",
			log.NewFields().WithMutation(string(ch.Op), ch.Slot, string(ch.ID), ch.Version).ToSlice()...)
	}
}

// Run publishes queued changes until ctx is done, then drains what is
// already queued on a best-effort basis.
func (n *Notifier) Run(ctx context.Context) error {
	for {
		select {
		case ch := <-n.queue:
			n.publish(ctx, ch)
		case <-ctx.Done():
			n.drain()
			return nil
		}
	}
}

func (n *Notifier) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	for {
		select {
		case ch := <-n.queue:
			n.publish(ctx, ch)
		default:
			return
		}
	}
}

func (n *Notifier) publish(ctx context.Context, ch ledger.Change) {
	if err := n.pub.Publish(ctx, NewChangeMessage(ch)); err != nil {
		n.logger.WarnContext(ctx, "Failed to publish change notification",
			log.NewFields().
				WithMutation(string(ch.Op), ch.Slot, string(ch.ID), ch.Version).
				WithOperation(log.OpPublish).
				WithError(err).
				ToSlice()...)
	}
}
