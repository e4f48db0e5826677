package service

import (
	"context"
	"log"
	"sync"
	"time"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"
)

// BatchEventWorker buffers events and writes them to the store in batches.
type BatchEventWorker interface {
	// Enqueue hands an event to the worker. It never blocks and never
	// panics: when the buffer is full, or the worker has been shut
	// down, the event is dropped and logged.
	Enqueue(event model.Event)

	// Shutdown stops the worker after draining the queue. It is
	// idempotent.
	Shutdown()
}

type batchEventWorker struct {
	repo          repository.EventRepository
	eventQueue    chan model.Event
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewBatchEventWorker starts the background flush loop.
func NewBatchEventWorker(repo repository.EventRepository, bufferSize, batchSize int, interval time.Duration) BatchEventWorker {
	worker := &batchEventWorker{
		repo:          repo,
		eventQueue:    make(chan model.Event, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

func (w *batchEventWorker) Enqueue(event model.Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		log.Printf("[WARN] event worker stopped, dropped event %q", event.Name)
		return
	}
	select {
	case w.eventQueue <- event:
	default:
		// Dropping is preferable to delaying the caller's action.
		log.Printf("[WARN] event queue full, dropped event %q", event.Name)
	}
}

func (w *batchEventWorker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.eventQueue)
	w.wg.Wait()
	log.Println("[INFO] event worker stopped")
}

func (w *batchEventWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.Event
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.eventQueue:
			if !ok {
				if len(batch) > 0 {
					w.bulkInsert(batch)
				}
				return
			}

			batch = append(batch, event)
			if len(batch) >= w.batchSize {
				w.bulkInsert(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.bulkInsert(batch)
				batch = nil
			}
		}
	}
}

func (w *batchEventWorker) bulkInsert(events []model.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.repo.CreateBatch(ctx, events); err != nil {
		log.Printf("[ERROR] bulk insert failed: %v", err)
		return
	}
	log.Printf("[INFO] %d events flushed", len(events))
}
