package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName 排班事件队列
// 队列的消费方（例如通知服务）是独立部署的，不属于本服务
const QueueName = "assignment_events"

// DeclareQueue 声明排班事件队列，服务启动时调用一次
func DeclareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

type Publisher struct {
	channel        *amqp.Channel
	publishTimeout time.Duration
}

func NewPublisher(ch *amqp.Channel, publishTimeout time.Duration) *Publisher {
	return &Publisher{
		channel:        ch,
		publishTimeout: publishTimeout,
	}
}

// PublishRunEvent 把一次排班的结果发布到事件队列
func (p *Publisher) PublishRunEvent(event *domain.AssignmentRunEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
