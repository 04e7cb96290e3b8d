package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/espacios-app/reservas-api/internal/config"
	"github.com/espacios-app/reservas-api/internal/domain"
)

// AMQPPublisher publishes ReservationEvents to a durable queue on the
// default exchange. It satisfies service.EventPublisher.
type AMQPPublisher struct {
	conn  *amqp.Connection
	queue string
}

// NewAMQPPublisher dials the broker and declares the queue. Returns nil
// without error when the config disables publishing.
func NewAMQPPublisher(conf *config.AMQPConfig) (*AMQPPublisher, error) {
	if conf == nil || !conf.Enabled {
		return nil, nil
	}

	conn, err := amqp.Dial(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err = ch.QueueDeclare(conf.Queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch.QueueDeclare -> %w", err)
	}

	return &AMQPPublisher{
		conn:  conn,
		queue: conf.Queue,
	}, nil
}

func (p *AMQPPublisher) ReservationCreated(ctx context.Context, reservation domain.Reservation) {
	p.publish(ctx, eventFrom(TypeReservationCreated, reservation))
}

func (p *AMQPPublisher) ReservationCancelled(ctx context.Context, reservation domain.Reservation) {
	p.publish(ctx, eventFrom(TypeReservationCancelled, reservation))
}

func (p *AMQPPublisher) publish(ctx context.Context, event ReservationEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal reservation event", zap.Error(err))
		return
	}

	ch, err := p.conn.Channel()
	if err != nil {
		zap.L().Error("failed to open amqp channel", zap.Error(err))
		return
	}
	defer func() { _ = ch.Close() }()

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		zap.L().Error("failed to publish reservation event",
			zap.String("type", event.Type),
			zap.Uint("reservation_id", event.ReservationID),
			zap.Error(err))
	}
}

func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}

func eventFrom(eventType string, reservation domain.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		SpaceID:       reservation.SpaceID,
		Date:          reservation.Date.Format("2006-01-02"),
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		Status:        string(reservation.Status),
		OccurredAt:    time.Now().UTC(),
	}
}
