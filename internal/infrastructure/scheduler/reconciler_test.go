package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// tickerRunner registra cada pasada disparada. El envío es no bloqueante
// para que el loop nunca se quede colgado si el test dejó de leer.
type tickerRunner struct {
	ticks chan struct{}
}

func newTickerRunner() *tickerRunner {
	return &tickerRunner{ticks: make(chan struct{}, 64)}
}

func (r *tickerRunner) RunOnce(ctx context.Context) (int, int) {
	select {
	case r.ticks <- struct{}{}:
	default:
	}
	return 0, 0
}

func (r *tickerRunner) waitTick(t *testing.T) {
	t.Helper()
	select {
	case <-r.ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("el loop no disparó la pasada esperada")
	}
}

func (r *tickerRunner) drain() {
	for {
		select {
		case <-r.ticks:
		default:
			return
		}
	}
}

// blockingRunner simula una pasada larga: avisa que entró y espera a que el
// test la libere.
type blockingRunner struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRunner) RunOnce(ctx context.Context) (int, int) {
	select {
	case r.entered <- struct{}{}:
	default:
	}
	<-r.release
	return 0, 0
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestReconciler_DisparaPasadasEnCadenciaYStopLasCorta(t *testing.T) {
	runner := newTickerRunner()
	r := scheduler.NewReconciler(runner, 5*time.Millisecond, logger.Nop())

	r.Start(context.Background())
	for i := 0; i < 3; i++ {
		runner.waitTick(t)
	}
	require.NoError(t, r.Stop(context.Background()))

	// Tras Stop el loop terminó: no deben llegar más pasadas.
	runner.drain()
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, runner.ticks, "un loop vivo tras Stop seguiría disparando pasadas")
}

func TestReconciler_StartRepetido_NoLanzaLoopsExtra(t *testing.T) {
	runner := newTickerRunner()
	r := scheduler.NewReconciler(runner, 5*time.Millisecond, logger.Nop())

	r.Start(context.Background())
	r.Start(context.Background())
	runner.waitTick(t)

	require.NoError(t, r.Stop(context.Background()))

	// Si el segundo Start hubiera lanzado un loop huérfano, sobreviviría al
	// Stop y seguiría enviando ticks.
	runner.drain()
	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, runner.ticks)
}

func TestReconciler_StopEsperaLaPasadaEnCurso(t *testing.T) {
	runner := &blockingRunner{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
	r := scheduler.NewReconciler(runner, time.Millisecond, logger.Nop())

	r.Start(context.Background())
	select {
	case <-runner.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("la pasada nunca arrancó")
	}

	stopDone := make(chan error, 1)
	go func() { stopDone <- r.Stop(context.Background()) }()

	select {
	case <-stopDone:
		t.Fatal("Stop no debe retornar mientras hay una pasada en curso")
	case <-time.After(30 * time.Millisecond):
	}

	close(runner.release)
	require.NoError(t, <-stopDone)
}

func TestReconciler_StopSinStart_EsNoOp(t *testing.T) {
	r := scheduler.NewReconciler(newTickerRunner(), time.Second, logger.Nop())
	assert.NoError(t, r.Stop(context.Background()))
}
