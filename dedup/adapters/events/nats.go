package events

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
)

const subjectCatalogChanged = "ingredients.catalog.changed"

type NatsPublisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

func NewNatsPublisher(address string, log *slog.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(address)
	if err != nil {
		return nil, err
	}
	log.Info("connected to broker for dedup", "address", address)

	return &NatsPublisher{
		log: log,
		nc:  nc,
	}, nil
}

func (p *NatsPublisher) NotifyCatalogChanged(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.nc.Publish(subjectCatalogChanged, []byte("canonical ingredients have been merged")); err != nil {
		return err
	}
	return p.nc.Flush()
}

func (p *NatsPublisher) Close() error {
	p.nc.Close()
	return nil
}
