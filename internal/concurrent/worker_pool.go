package concurrent

import (
	"context"
	"sync"
	"time"

	"apunab/pkg/logger"
)

// SettlementJob carries one bet to be settled by the pool. Result, when
// non-nil, receives the outcome of the job exactly once.
type SettlementJob struct {
	BetID  string
	Won    bool
	Result chan error
}

type SettlementProcessor = func(job *SettlementJob) error

type WorkerPool struct {
	numWorkers     int
	jobQueue       chan *SettlementJob
	processor      SettlementProcessor
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
	logger         logger.Logger
	started        bool
	mutex          sync.Mutex
	statsCollector *StatsCollector
}

func NewWorkerPool(numWorkers int, queueSize int, processor SettlementProcessor, logger logger.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		numWorkers:     numWorkers,
		jobQueue:       make(chan *SettlementJob, queueSize),
		processor:      processor,
		ctx:            ctx,
		cancel:         cancel,
		logger:         logger,
		started:        false,
		statsCollector: NewStatsCollector(),
	}
}

func (wp *WorkerPool) Start() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()

	if wp.started {
		return
	}

	wp.logger.Info("İşçi havuzu başlatılıyor", map[string]interface{}{
		"num_workers": wp.numWorkers,
		"queue_size":  cap(wp.jobQueue),
	})

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		workerID := i
		go func() {
			defer wp.wg.Done()
			wp.worker(workerID)
		}()
	}

	wp.started = true
}

func (wp *WorkerPool) Stop() {
	wp.mutex.Lock()
	if !wp.started {
		wp.mutex.Unlock()
		return
	}
	wp.started = false
	wp.mutex.Unlock()

	wp.logger.Info("İşçi havuzu durduruluyor", map[string]interface{}{})
	wp.cancel()
	close(wp.jobQueue)
	wp.wg.Wait()
}

func (wp *WorkerPool) Submit(job *SettlementJob) bool {
	wp.mutex.Lock()
	if !wp.started {
		wp.mutex.Unlock()
		return false
	}
	wp.mutex.Unlock()

	// Non-blocking send
	select {
	case wp.jobQueue <- job:
		wp.statsCollector.IncrementSubmitted()
		wp.logger.Debug("Sonuçlandırma işi kuyruğa eklendi", map[string]interface{}{
			"bet_id": job.BetID,
			"won":    job.Won,
		})
		return true
	default:
		wp.statsCollector.IncrementRejected()
		wp.logger.Warn("Sonuçlandırma kuyruğu dolu, iş reddedildi", map[string]interface{}{
			"bet_id": job.BetID,
		})
		return false
	}
}

func (wp *WorkerPool) worker(id int) {
	wp.logger.Info("İşçi başlatıldı", map[string]interface{}{"worker_id": id})

	for {
		select {
		case <-wp.ctx.Done():
			wp.logger.Info("İşçi durduruldu", map[string]interface{}{"worker_id": id})
			return
		case job, ok := <-wp.jobQueue:
			if !ok {
				wp.logger.Info("İş kuyruğu kapatıldı, işçi durduruluyor", map[string]interface{}{"worker_id": id})
				return
			}

			startTime := time.Now()
			err := wp.processor(job)
			processingTime := time.Since(startTime)

			if err != nil {
				wp.statsCollector.IncrementFailed()
				wp.logger.Error("Sonuçlandırma işi başarısız oldu", map[string]interface{}{
					"worker_id":       id,
					"bet_id":          job.BetID,
					"error":           err.Error(),
					"processing_time": processingTime.String(),
				})
			} else {
				wp.statsCollector.IncrementCompleted()
				wp.statsCollector.RecordProcessingTime(processingTime)
				wp.logger.Info("Sonuçlandırma işi tamamlandı", map[string]interface{}{
					"worker_id":       id,
					"bet_id":          job.BetID,
					"processing_time": processingTime.String(),
				})
			}

			if job.Result != nil {
				job.Result <- err
			}
		}
	}
}

func (wp *WorkerPool) GetStats() Stats {
	return wp.statsCollector.GetStats()
}

func (wp *WorkerPool) QueueLength() int {
	return len(wp.jobQueue)
}

func (wp *WorkerPool) QueueCapacity() int {
	return cap(wp.jobQueue)
}
