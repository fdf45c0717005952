package sink

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain/notification"
)

// Publisher is the part of jetstream.JetStream used by the sink
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type JetStreamCfg struct {
	Conn *nats.Conn
	// Stream is created or updated to capture Subject.*
	Stream string
	// Subject prefix, the item id is appended
	Subject string
	MaxAge  time.Duration
}

type natsSink struct {
	js      Publisher
	subject string
}

// NewJetStream ensures the stream exists and returns a sink publishing into it
func NewJetStream(c ctx.Ctx, cfg JetStreamCfg) (notification.Sink, error) {
	js, err := jetstream.New(cfg.Conn)
	if err != nil {
		return nil, xerrors.Errorf("failed to create JetStream context: %w", err)
	}

	tc, cancel := ctx.WithTimeout(c, 10*time.Second)
	defer cancel()

	if _, err := js.CreateOrUpdateStream(tc, jetstream.StreamConfig{
		Name:        cfg.Stream,
		Description: "marketplace notifications",
		Subjects:    []string{cfg.Subject + ".*"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      cfg.MaxAge,
		Replicas:    1,
	}); err != nil {
		return nil, xerrors.Errorf("failed to create/update stream: %w", err)
	}
	c.WithFields(log.Fields{"stream": cfg.Stream, "subject": cfg.Subject}).Info("jetstream ready")

	return NewNats(js, cfg.Subject), nil
}

func NewNats(js Publisher, subject string) notification.Sink {
	return &natsSink{js: js, subject: subject}
}

func (s *natsSink) Name() string {
	return "nats"
}

func (s *natsSink) Publish(c ctx.Ctx, n notification.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": n.EventId}).Error("json.Marshal failed")
		return err
	}
	subject := s.subject + "." + strconv.FormatInt(int64(n.ItemId), 10)
	// the event id deduplicates redeliveries inside the stream window
	if _, err := s.js.Publish(c, subject, data, jetstream.WithMsgID(n.EventId)); err != nil {
		c.WithFields(log.Fields{"err": err, "subject": subject, "eventId": n.EventId}).Error("js.Publish failed")
		return err
	}
	return nil
}
