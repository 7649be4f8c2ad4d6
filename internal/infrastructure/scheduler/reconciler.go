package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// ReconcileRunner es la pasada que el scheduler dispara en cada tick
// (billing.ReconcileUseCase en producción).
type ReconcileRunner interface {
	RunOnce(ctx context.Context) (healed, advanced int)
}

// Reconciler dispara el caso de uso de reconciliación en una cadencia fija,
// independiente del tráfico de requests. Cada tick es fire-and-forget: una
// pasada corre hasta terminar y no se cancela entre ticks.
type Reconciler struct {
	uc       ReconcileRunner
	interval time.Duration
	log      *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	active bool
}

// NewReconciler construye el scheduler.
func NewReconciler(uc ReconcileRunner, interval time.Duration, log *logger.Logger) *Reconciler {
	return &Reconciler{uc: uc, interval: interval, log: log}
}

// Start lanza el loop en una goroutine. Llamadas repetidas no lanzan loops extra.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return
	}
	r.active = true
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.runLoop(ctx)

	r.log.Info().Dur("interval", r.interval).Msg("reconciliador de facturas iniciado")
}

// Stop detiene el loop y espera a que la pasada en curso termine, o a que
// venza ctx.
func (r *Reconciler) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return nil
	}
	r.active = false
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.log.Info().Msg("reconciliador de facturas detenido")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Reconciler) runLoop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			healed, advanced := r.uc.RunOnce(ctx)
			if healed > 0 || advanced > 0 {
				r.log.Info().
					Int("healed", healed).
					Int("advanced", advanced).
					Msg("pasada de reconciliación con cambios")
			}
		}
	}
}
