package repository

import "context"

// JobHandler processes a single dequeued payload. Returning an error requeues
// the job; returning nil acknowledges it.
type JobHandler func(ctx context.Context, payload []byte) error

// IQueue defines an at-least-once background job queue. Implementations exist
// for Redis lists, Google Pub/Sub, and Azure Service Bus.
type IQueue interface {
	// Enqueue publishes payload under the given job name.
	Enqueue(ctx context.Context, jobName string, payload []byte) error
	// Consume blocks, delivering jobs for jobName to handler until ctx is done.
	Consume(ctx context.Context, jobName string, handler JobHandler) error
}
