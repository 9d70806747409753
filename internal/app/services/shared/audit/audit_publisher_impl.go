package audit

import (
	"context"
	"sync"

	"somnolink-service/internal/app/contracts"
	"somnolink-service/internal/app/models"
	"somnolink-service/internal/pkg/constvars"
	"somnolink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	auditPublisherInstance contracts.AuditPublisher
	onceAuditPublisher     sync.Once
)

type auditPublisher struct {
	Connection *amqp091.Connection
	QueueName  string
	Log        *zap.Logger
}

func NewAuditPublisher(connection *amqp091.Connection, queueName string, logger *zap.Logger) contracts.AuditPublisher {
	onceAuditPublisher.Do(func() {
		instance := &auditPublisher{
			Connection: connection,
			QueueName:  queueName,
			Log:        logger,
		}
		auditPublisherInstance = instance
	})
	return auditPublisherInstance
}

func (p *auditPublisher) Publish(ctx context.Context, event *models.AuditEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	channel, err := p.Connection.Channel()
	if err != nil {
		p.Log.Error("auditPublisher.Publish error opening channel",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.QueueName)
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(p.QueueName, true, false, false, false, nil)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.QueueName)
	}

	err = channel.PublishWithContext(ctx, "", p.QueueName, false, false, amqp091.Publishing{
		ContentType: constvars.MIMEApplicationJSON,
		Body:        body,
	})
	if err != nil {
		p.Log.Error("auditPublisher.Publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAuditEventKey, event.Event),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.QueueName)
	}

	return nil
}
