package events

import (
	"log/slog"

	"github.com/nats-io/nats.go"
)

const subjectCatalogChanged = "ingredients.catalog.changed"

// CacheInvalidator is the piece of the catalog reacting to change events.
type CacheInvalidator interface {
	InvalidateProducts()
}

type NatsSubscriber struct {
	log *slog.Logger
	nc  *nats.Conn
	sub *nats.Subscription
}

func NewNatsSubscriber(address string, log *slog.Logger, invalidator CacheInvalidator) (*NatsSubscriber, error) {
	nc, err := nats.Connect(address)
	if err != nil {
		return nil, err
	}
	log.Info("connected to broker for catalog", "address", address)

	s := &NatsSubscriber{
		log: log,
		nc:  nc,
	}

	subscribe, err := nc.Subscribe(subjectCatalogChanged, func(msg *nats.Msg) {
		log.Info("received catalog change event", "subject", msg.Subject)
		invalidator.InvalidateProducts()
	})
	if err != nil {
		nc.Close()
		return nil, err
	}

	s.sub = subscribe
	return s, nil
}

func (s *NatsSubscriber) Close() error {
	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			s.log.Error("failed to unsubscribe", "error", err)
		}
	}
	s.nc.Close()
	return nil
}
