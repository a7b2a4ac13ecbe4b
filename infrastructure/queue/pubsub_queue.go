package queue

import (
	"context"

	"cloud.google.com/go/pubsub"
	"youtube-gateway/domain/repository"
	"youtube-gateway/infrastructure/logger"
)

// PubSubQueue implements the job queue on Google Cloud Pub/Sub. The job name
// maps to a topic; the subscription ID comes from configuration.
type PubSubQueue struct {
	client         *pubsub.Client
	subscriptionID string
}

func NewPubSubQueue(client *pubsub.Client, subscriptionID string) repository.IQueue {
	return &PubSubQueue{client: client, subscriptionID: subscriptionID}
}

func (q *PubSubQueue) Enqueue(ctx context.Context, jobName string, payload []byte) error {
	topic, err := q.ensureTopic(ctx, jobName)
	if err != nil {
		return err
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}

	logger.GetLogger().WithField("serverID", serverID).Info("Message published")
	return nil
}

func (q *PubSubQueue) Consume(ctx context.Context, jobName string, handler repository.JobHandler) error {
	topic, err := q.ensureTopic(ctx, jobName)
	if err != nil {
		return err
	}

	sub := q.client.Subscription(q.subscriptionID)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		logger.GetLogger().WithField("subscriptionID", q.subscriptionID).Info("Subscription doesn't exist - creating it")
		sub, err = q.client.CreateSubscription(ctx, q.subscriptionID, pubsub.SubscriptionConfig{Topic: topic})
		if err != nil {
			return err
		}
	}

	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if err := handler(ctx, msg.Data); err != nil {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

// ensureTopic creates the topic when it doesn't exist yet.
func (q *PubSubQueue) ensureTopic(ctx context.Context, topicName string) (*pubsub.Topic, error) {
	topic := q.client.Topic(topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.GetLogger().WithField("topic", topicName).Info("Topic doesn't exist - creating it")
		topic, err = q.client.CreateTopic(ctx, topicName)
		if err != nil {
			return nil, err
		}
	}
	return topic, nil
}
