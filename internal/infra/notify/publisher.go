package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/config"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/logger"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/metrics"
)

const publishTimeout = 5 * time.Second

// Publisher публикует события бронирований в RabbitMQ. Отправка
// fire-and-forget: ошибки логируются и считаются в метриках, но никогда
// не прерывают основной поток запроса.
type Publisher interface {
	BookingCreated(ctx context.Context, event BookingEvent)
	BookingCancelled(ctx context.Context, event BookingEvent)
	BookingRescheduled(ctx context.Context, event BookingEvent)
	QueuePositionNotified(ctx context.Context, event BookingEvent)
	Close() error
}

// AMQPPublisher реализация Publisher поверх amqp091-go. Держит одно
// соединение на процесс и переподключается при обрыве.
type AMQPPublisher struct {
	url     string
	queue   string
	service string
	log     *logger.Logger
	mtr     *metrics.Metrics

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher подключается к брокеру и объявляет очередь
func NewAMQPPublisher(cfg config.RabbitMQConfig, serviceName string, log *logger.Logger, mtr *metrics.Metrics) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		url:     cfg.URL,
		queue:   cfg.Queue,
		service: serviceName,
		log:     log,
		mtr:     mtr,
	}

	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("notify: failed to connect to rabbitmq: %w", err)
	}

	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	// durable очередь, сообщения переживают рестарт брокера
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch

	return nil
}

// BookingCreated публикует событие о создании бронирования
func (p *AMQPPublisher) BookingCreated(ctx context.Context, event BookingEvent) {
	event.Event = EventBookingCreated
	p.publish(ctx, event)
}

// BookingCancelled публикует событие об отмене бронирования
func (p *AMQPPublisher) BookingCancelled(ctx context.Context, event BookingEvent) {
	event.Event = EventBookingCancelled
	p.publish(ctx, event)
}

// BookingRescheduled публикует событие о переносе бронирования
func (p *AMQPPublisher) BookingRescheduled(ctx context.Context, event BookingEvent) {
	event.Event = EventBookingRescheduled
	p.publish(ctx, event)
}

// QueuePositionNotified публикует текущую позицию клиента в очереди
func (p *AMQPPublisher) QueuePositionNotified(ctx context.Context, event BookingEvent) {
	event.Event = EventQueuePosition
	p.publish(ctx, event)
}

func (p *AMQPPublisher) publish(ctx context.Context, event BookingEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("notify: failed to marshal event %s for booking %d: %v", event.Event, event.BookingID, err)
		p.mtr.ObserveNotifyEvent(p.service, event.Event, "error")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.publishLocked(ctx, body)
	if err != nil {
		// одна попытка переподключения, затем сдаемся
		p.log.Warn("notify: publish failed, reconnecting: %v", err)
		if err = p.reconnectLocked(); err == nil {
			err = p.publishLocked(ctx, body)
		}
	}

	if err != nil {
		p.log.Error("notify: failed to publish event %s for booking %d: %v", event.Event, event.BookingID, err)
		p.mtr.ObserveNotifyEvent(p.service, event.Event, "error")
		return
	}

	p.mtr.ObserveNotifyEvent(p.service, event.Event, "ok")
}

func (p *AMQPPublisher) publishLocked(ctx context.Context, body []byte) error {
	if p.ch == nil {
		return amqp.ErrClosed
	}

	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = имя очереди
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) reconnectLocked() error {
	p.closeLocked()
	return p.connect()
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close закрывает соединение с брокером
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

// NopPublisher заглушка на случай выключенных уведомлений
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher { return &NopPublisher{} }

func (NopPublisher) BookingCreated(context.Context, BookingEvent)        {}
func (NopPublisher) BookingCancelled(context.Context, BookingEvent)      {}
func (NopPublisher) BookingRescheduled(context.Context, BookingEvent)    {}
func (NopPublisher) QueuePositionNotified(context.Context, BookingEvent) {}
func (NopPublisher) Close() error                                        { return nil }
