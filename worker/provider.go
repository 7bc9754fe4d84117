package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"coccigo/config"
	"coccigo/services/workflow"

	"github.com/hibiken/asynq"
)

// TypeProviderInvoke is the task type for one provider invocation.
const TypeProviderInvoke = "provider:invoke"

// ProviderInvokePayload identifies the request and its audit run.
type ProviderInvokePayload struct {
	RequestID string `json:"requestId"`
	RunID     string `json:"runId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqDispatcher enqueues provider invocations on the task queue. It
// satisfies workflow.Dispatcher.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher creates a dispatcher backed by the configured queue.
func NewAsynqDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{client: asynq.NewClient(redisOpts())}
}

// Dispatch enqueues one invocation. MaxRetry is zero: a failed run is never
// retried automatically, a fresh submission is the only way to try again.
func (d *AsynqDispatcher) Dispatch(ctx context.Context, requestID, runID string) error {
	payload, err := json.Marshal(ProviderInvokePayload{RequestID: requestID, RunID: runID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeProviderInvoke, payload, asynq.MaxRetry(0))
	_, err = d.client.EnqueueContext(ctx, task)
	return err
}

// Close releases the underlying queue client.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

// InitProviderWorker runs the async worker in background.
func InitProviderWorker(engine workflow.Engine) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProviderInvoke, handleProviderInvoke(engine))

	// Start async worker with retry logic
	go func() {
		log.Println("[ProviderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ProviderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ProviderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleProviderInvoke(engine workflow.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ProviderInvokePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ProviderWorker] invalid payload: %v", err)
			return err
		}
		return engine.ProcessRequest(ctx, p.RequestID, p.RunID)
	}
}
