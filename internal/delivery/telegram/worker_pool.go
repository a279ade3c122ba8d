package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/obsbot/logbot/pkg/logger"
)

const (
	jobQueueSize       = 100
	defaultWorkerCount = 8
)

// analysisJob is one message queued for pipeline processing.
type analysisJob struct {
	ctx     context.Context
	message *tgbotapi.Message
}

// workerPool bounds how many messages run through the analysis
// pipeline at once. Log downloads and analyzer calls are network-bound,
// so a burst of posted logs must not fan out into unbounded goroutines.
type workerPool struct {
	jobs    chan analysisJob
	handler *BotHandler
	wg      sync.WaitGroup
}

func newWorkerPool(handler *BotHandler, workerCount int) *workerPool {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}

	wp := &workerPool{
		jobs:    make(chan analysisJob, jobQueueSize),
		handler: handler,
	}
	for i := 0; i < workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *workerPool) worker() {
	defer wp.wg.Done()
	for job := range wp.jobs {
		wp.handler.handleMessage(job.ctx, job.message)
	}
}

// submit queues a job without blocking the update loop. A full queue
// drops the message; the sender simply gets no reply.
func (wp *workerPool) submit(job analysisJob) {
	select {
	case wp.jobs <- job:
	default:
		logger.WarnLogger.Printf("Analysis queue full, dropping message from %s", job.message.From.UserName)
	}
}

// stop closes the queue and waits for in-flight jobs to finish.
func (wp *workerPool) stop() {
	close(wp.jobs)
	wp.wg.Wait()
}
