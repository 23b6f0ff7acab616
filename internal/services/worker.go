package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/job-predictor/internal/models"
	"alfredoptarigan/job-predictor/internal/repositories"
)

var (
	ErrQueueFull     = errors.New("record queue is full")
	ErrWorkerStopped = errors.New("record worker is stopped")
)

// Worker writes prediction records in the background so persistence never
// delays a response.
type Worker interface {
	Recorder
	Start(ctx context.Context)
	Stop()
}

type worker struct {
	predictionRepo repositories.PredictionRepository
	log            *zap.Logger
	recordQueue    chan *models.PredictionRecord
	concurrency    int
	writeTimeout   time.Duration
	wg             sync.WaitGroup
	stopChan       chan struct{}
	stopOnce       sync.Once

	// mu orders enqueues before the close of stopChan, so every accepted
	// record is seen by a drain.
	mu      sync.RWMutex
	stopped bool
}

func NewWorker(
	predictionRepo repositories.PredictionRepository,
	log *zap.Logger,
	concurrency int,
	queueSize int,
	writeTimeout time.Duration,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	return &worker{
		predictionRepo: predictionRepo,
		log:            log,
		recordQueue:    make(chan *models.PredictionRecord, queueSize),
		concurrency:    concurrency,
		writeTimeout:   writeTimeout,
		stopChan:       make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting record worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRecords(ctx, i+1)
	}
}

// Stop implements Worker. Records already queued are written before it returns.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping record worker")
		w.mu.Lock()
		w.stopped = true
		close(w.stopChan)
		w.mu.Unlock()
		w.wg.Wait()
		w.log.Info("record worker stopped")
	})
}

// Record implements Recorder. It never blocks.
func (w *worker) Record(_ context.Context, record *models.PredictionRecord) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrWorkerStopped
	}

	select {
	case w.recordQueue <- record:
		w.log.Debug("prediction record enqueued", zap.String("user_id", record.UserID))
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *worker) processRecords(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.drain(ctx, workerID)
			return
		case record := <-w.recordQueue:
			w.write(ctx, workerID, record)
		}
	}
}

func (w *worker) drain(ctx context.Context, workerID int) {
	for {
		select {
		case record := <-w.recordQueue:
			w.write(ctx, workerID, record)
		default:
			return
		}
	}
}

func (w *worker) write(ctx context.Context, workerID int, record *models.PredictionRecord) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.writeTimeout)
	defer cancel()

	if err := w.predictionRepo.Create(writeCtx, record); err != nil {
		w.log.Error("failed to persist prediction",
			zap.Int("worker", workerID),
			zap.String("user_id", record.UserID),
			zap.Error(err),
		)
		return
	}

	w.log.Debug("prediction persisted",
		zap.Int("worker", workerID),
		zap.String("user_id", record.UserID),
		zap.String("role", record.Role),
	)
}
