package queue

import (
	"context"
	"errors"
	"time"

	"youtube-gateway/domain/repository"
	"youtube-gateway/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const (
	queueKeyPrefix   = "queue:"
	processingSuffix = ":processing"
	popTimeout       = 5 * time.Second
	requeueBackoff   = time.Second
)

// RedisQueue implements an at-least-once job queue on Redis lists. Jobs are
// moved to a processing list while a handler runs so a crash between pop and
// ack leaves them recoverable.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) repository.IQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, jobName string, payload []byte) error {
	return q.client.LPush(ctx, queueKeyPrefix+jobName, payload).Err()
}

func (q *RedisQueue) Consume(ctx context.Context, jobName string, handler repository.JobHandler) error {
	queueKey := queueKeyPrefix + jobName
	processingKey := queueKey + processingSuffix

	q.reclaim(ctx, processingKey, queueKey)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		payload, err := q.client.BLMove(ctx, queueKey, processingKey, "RIGHT", "LEFT", popTimeout).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			logger.GetLogger().WithField("error", err).Error("Error while popping job from queue")
			time.Sleep(requeueBackoff)
			continue
		}

		if err := handler(ctx, []byte(payload)); err != nil {
			logger.GetLogger().
				WithField("job", jobName).
				WithField("error", err).
				Warn("Job failed, requeueing")
			// Requeue before removing from the processing list: a crash in
			// between duplicates the job instead of losing it. When the
			// requeue fails the job stays in the processing list, where
			// reclaim picks it up.
			if pushErr := q.client.RPush(ctx, queueKey, payload).Err(); pushErr != nil {
				logger.GetLogger().WithField("error", pushErr).Error("Error while requeueing job")
			} else {
				q.ack(ctx, processingKey, payload)
			}
			time.Sleep(requeueBackoff)
			continue
		}

		q.ack(ctx, processingKey, payload)
	}
}

// reclaim moves jobs stranded in the processing list back onto the queue.
func (q *RedisQueue) reclaim(ctx context.Context, processingKey, queueKey string) {
	for {
		_, err := q.client.LMove(ctx, processingKey, queueKey, "RIGHT", "LEFT").Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				logger.GetLogger().WithField("error", err).Warn("Error while reclaiming in-flight jobs")
			}
			return
		}
	}
}

func (q *RedisQueue) ack(ctx context.Context, processingKey, payload string) {
	if err := q.client.LRem(ctx, processingKey, 1, payload).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Error while removing job from processing list")
	}
}
