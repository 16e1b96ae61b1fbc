package usecases

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dcops-server/internal/infra/async"
)

func NewOverdueWorker(
	ticker *time.Ticker,
	repository WorkOrderRepository,
	sla *SLACalculator,
) *OverdueWorker {
	return &OverdueWorker{
		ticker:     ticker,
		repository: repository,
		sla:        sla,
		stop:       make(chan struct{}),
	}
}

var _ async.Worker = (*OverdueWorker)(nil)

// OverdueWorker periodically flags open work orders whose SLA deadline has
// passed.
type OverdueWorker struct {
	ticker     *time.Ticker
	repository WorkOrderRepository
	sla        *SLACalculator
	stop       chan struct{}
	stopOnce   sync.Once
}

func (w *OverdueWorker) Run(ctx context.Context, done func()) {
	slog.Debug("overdue worker started")
	defer done()

	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			slog.Info("overdue worker cancelled")
			wg.Wait()
			return
		case <-w.stop:
			slog.Info("overdue worker stopped")
			wg.Wait()
			return
		case <-w.ticker.C:
			wg.Add(1)
			w.sweep(context.Background(), wg.Done)
		}
	}
}

func (w *OverdueWorker) Shutdown() {
	w.ticker.Stop()
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

func (w *OverdueWorker) sweep(ctx context.Context, done func()) {
	defer done()

	now := time.Now()
	open, err := w.repository.FindOpen(ctx)
	if err != nil {
		slog.Error("finding open work orders", slog.String("error", err.Error()))
		return
	}

	for _, workOrder := range open {
		if workOrder.IsTimeout || !w.sla.IsOverdue(workOrder, now) {
			continue
		}

		workOrder.IsTimeout = true
		if err := w.repository.Update(ctx, workOrder); err != nil {
			slog.Error("flagging overdue work order",
				slog.String("batch_id", workOrder.BatchID),
				slog.String("error", err.Error()))
			continue
		}

		slog.Warn("work order exceeded SLA",
			slog.String("batch_id", workOrder.BatchID),
			slog.String("operation_type", workOrder.OperationType.String()))
	}
}
