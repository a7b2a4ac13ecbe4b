package queue

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"youtube-gateway/domain/repository"
	"youtube-gateway/infrastructure/logger"
)

// ServiceBusQueue implements the job queue on Azure Service Bus. A single
// configured queue carries all jobs; the job name travels in the message subject.
type ServiceBusQueue struct {
	client    *azservicebus.Client
	queueName string
}

func NewServiceBusQueue(namespace, queueName string) (repository.IQueue, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	client, err := azservicebus.NewClient(namespace, credential, nil)
	if err != nil {
		return nil, err
	}
	return &ServiceBusQueue{client: client, queueName: queueName}, nil
}

func (q *ServiceBusQueue) Enqueue(ctx context.Context, jobName string, payload []byte) error {
	sender, err := q.client.NewSender(q.queueName, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new sender service bus.")
		return err
	}
	defer func() {
		if closeErr := sender.Close(context.Background()); closeErr != nil {
			logger.GetLogger().WithField("error", closeErr).Error("Error while closing sender.")
		}
	}()

	subject := jobName
	sbMessage := &azservicebus.Message{
		Body:    payload,
		Subject: &subject,
	}
	if err := sender.SendMessage(ctx, sbMessage, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}
	return nil
}

func (q *ServiceBusQueue) Consume(ctx context.Context, jobName string, handler repository.JobHandler) error {
	receiver, err := q.client.NewReceiverForQueue(q.queueName, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new receiver service bus.")
		return err
	}
	defer func() {
		if closeErr := receiver.Close(context.Background()); closeErr != nil {
			logger.GetLogger().WithField("error", closeErr).Error("Error while closing receiver.")
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		messages, err := receiver.ReceiveMessages(ctx, 10, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.GetLogger().WithField("error", err).Error("Error while receiving messages.")
			continue
		}

		for _, message := range messages {
			if err := handler(ctx, message.Body); err != nil {
				if abandonErr := receiver.AbandonMessage(ctx, message, nil); abandonErr != nil {
					logger.GetLogger().WithField("error", abandonErr).Error("Error while abandoning message.")
				}
				continue
			}
			if completeErr := receiver.CompleteMessage(ctx, message, nil); completeErr != nil {
				logger.GetLogger().WithField("error", completeErr).Error("Error while completing message.")
			}
		}
	}
}
