package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Enqueuer is the narrow interface handlers depend on. It accepts a
// message for eventual delivery and returns a job ID for the logs.
type Enqueuer interface {
	Enqueue(msg Message) string
}

// Outbox queues messages and delivers them on a background worker with
// retry and exponential backoff. It is the replacement for the old
// inline send-or-warn flow: the caller's write has already committed by
// the time a message is enqueued, and a delivery failure surfaces in
// the logs rather than in the user's response.
//
// The queue is in-process only. Messages still pending at shutdown are
// drained by Close; messages pending at a crash are lost, which is the
// accepted trade-off for a single-node deployment without a broker.
type Outbox struct {
	mailer      Mailer
	log         *slog.Logger
	maxAttempts int
	backoff     time.Duration

	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	id  string
	msg Message
}

// queueDepth bounds how many undelivered messages can pile up before
// Enqueue blocks. Registrations produce two messages each, so this
// covers a long relay outage at this site's traffic.
const queueDepth = 64

// NewOutbox starts the delivery worker and returns the outbox.
// maxAttempts is the total number of tries per message; backoff is the
// wait after the first failure, doubling each further failure.
func NewOutbox(mailer Mailer, log *slog.Logger, maxAttempts int, backoff time.Duration) *Outbox {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	o := &Outbox{
		mailer:      mailer,
		log:         log,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		jobs:        make(chan job, queueDepth),
	}

	o.wg.Add(1)
	go o.run()

	return o
}

// Enqueue accepts a message for delivery and returns its job ID.
// It blocks only if the queue is full.
func (o *Outbox) Enqueue(msg Message) string {
	j := job{id: uuid.NewString(), msg: msg}

	o.log.Info("email queued",
		slog.String("job_id", j.id),
		slog.String("kind", string(msg.Kind)),
		slog.String("to", msg.To),
	)

	o.jobs <- j
	return j.id
}

// Close stops accepting new messages, waits for the worker to drain the
// queue, and returns. Call once, at shutdown.
func (o *Outbox) Close() {
	close(o.jobs)
	o.wg.Wait()
}

// run is the single delivery worker. One worker is deliberate: it
// serialises sends so the relay sees at most one login at a time.
func (o *Outbox) run() {
	defer o.wg.Done()

	for j := range o.jobs {
		o.deliver(j)
	}
}

// deliver tries a job up to maxAttempts times. Terminal failure is
// logged at ERROR and the job is dropped — the registration it belongs
// to stays committed either way.
func (o *Outbox) deliver(j job) {
	wait := o.backoff

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		err := o.mailer.Send(j.msg)
		if err == nil {
			o.log.Info("email sent",
				slog.String("job_id", j.id),
				slog.String("kind", string(j.msg.Kind)),
				slog.Int("attempt", attempt),
			)
			return
		}

		if attempt < o.maxAttempts {
			o.log.Warn("email send failed, will retry",
				slog.String("job_id", j.id),
				slog.String("error", err.Error()),
				slog.Int("attempt", attempt),
			)
			time.Sleep(wait)
			wait *= 2
			continue
		}

		o.log.Error("email send failed, giving up",
			slog.String("job_id", j.id),
			slog.String("kind", string(j.msg.Kind)),
			slog.String("to", j.msg.To),
			slog.String("error", err.Error()),
			slog.Int("attempts", o.maxAttempts),
		)
	}
}
