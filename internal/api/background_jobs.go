package api

import (
	"context"
	"time"

	"cv-normalizer/internal/cv"
	"cv-normalizer/internal/logger"
	"cv-normalizer/internal/storage"

	"go.uber.org/zap"
)

const persistTimeout = 10 * time.Second

// PersistJob is a parsed document waiting to be written to the store.
type PersistJob struct {
	JobID     string
	Filename  string
	Document  *cv.NormalizedDocument
	Timestamp time.Time
}

// StartBackgroundWorkers starts the persistence worker.
func (a *API) StartBackgroundWorkers() {
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		a.persistWorker()
	}()
	a.logger.Info("background workers started", zap.Int("queue_size", cap(a.persistQueue)))
}

// Close stops accepting jobs and waits for queued ones to be written.
func (a *API) Close() {
	if a.persistQueue == nil {
		return
	}
	close(a.persistQueue)
	a.workers.Wait()
}

// QueuePersistJob enqueues a document without blocking. It reports false
// when persistence is disabled or the queue is full.
func (a *API) QueuePersistJob(job PersistJob) bool {
	if a.persistQueue == nil {
		return false
	}
	select {
	case a.persistQueue <- job:
		return true
	default:
		a.logger.Warn("persist queue full, dropping job", zap.String(logger.FieldJobID, job.JobID))
		return false
	}
}

func (a *API) persistWorker() {
	for job := range a.persistQueue {
		log := a.logger.With(zap.String(logger.FieldJobID, job.JobID), zap.String(logger.FieldFilename, job.Filename))

		file, entities := storage.FromDocument(job.JobID, job.Filename, job.Document)

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		id, err := a.store.SaveCV(ctx, file, entities)
		cancel()
		if err != nil {
			log.Error("failed to persist document", zap.Error(err))
			continue
		}
		log.Info("document persisted",
			zap.Int64("cv_file_id", id),
			zap.Int("entities", len(entities)),
			zap.Duration("queued_for", time.Since(job.Timestamp)))
	}
}
