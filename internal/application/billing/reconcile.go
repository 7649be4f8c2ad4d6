package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// RandSource devuelve un valor uniforme en [0,1). Se inyecta para que los
// tests puedan forzar ambas ramas del avance PENDING→PAID.
type RandSource func() float64

// ReconcileUseCase recorre el libro de facturas, repara registros
// estructuralmente incompletos (fecha o estado ausentes, típicamente cargas
// externas o rutas antiguas) y avanza facturas PENDING a PAID con una
// probabilidad fija, simulando la liquidación de un gateway de pagos.
//
// PAID y CANCELLED nunca se tocan: la única transición de este componente es
// PENDING→PAID, hacia adelante y de un solo paso.
type ReconcileUseCase struct {
	txRunner       TxRunner
	invoiceRepo    repository.InvoiceRepository
	payProbability float64
	rand           RandSource
	log            *logger.Logger
}

// NewReconcileUseCase construye el caso de uso. payProbability en [0,1].
func NewReconcileUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	payProbability float64,
	rand RandSource,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner:       txRunner,
		invoiceRepo:    invoiceRepo,
		payProbability: payProbability,
		rand:           rand,
		log:            log,
	}
}

// RunOnce ejecuta una pasada completa sobre el libro. Un fallo reparando o
// avanzando una factura se registra y no aborta el resto de la pasada: no
// hay caller al que reportar. Devuelve cuántas facturas cambiaron.
func (uc *ReconcileUseCase) RunOnce(ctx context.Context) (healed, advanced int) {
	invoices, err := uc.invoiceRepo.List()
	if err != nil {
		uc.log.Error().Err(err).Msg("reconciliación: listar facturas")
		return 0, 0
	}
	for _, inv := range invoices {
		h, a, err := uc.reconcileOne(ctx, inv.ID)
		if err != nil {
			uc.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("reconciliación: procesar factura")
			continue
		}
		if h {
			healed++
		}
		if a {
			advanced++
		}
	}
	return healed, advanced
}

// reconcileOne repara y avanza una sola factura dentro de su propia
// transacción con bloqueo de fila, para no pisar una actualización
// concurrente del usuario sobre el mismo registro. Solo persiste si algo
// cambió, y exactamente una vez.
func (uc *ReconcileUseCase) reconcileOne(ctx context.Context, id string) (healed, advanced bool, err error) {
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return nil // eliminada entre el scan y esta transacción
		}

		changed := false
		if inv.IssueDate == nil {
			today := time.Now()
			inv.IssueDate = &today
			changed = true
			healed = true
		}
		if inv.Status == "" {
			inv.Status = entity.StatusPending
			changed = true
			healed = true
		}

		if inv.Status == entity.StatusPending && uc.rand() < uc.payProbability {
			inv.Status = entity.StatusPaid
			changed = true
			advanced = true
			uc.log.Info().Str("invoice_id", inv.ID).Msg("factura pagada automáticamente")
		}

		if !changed {
			return nil
		}
		inv.UpdatedAt = time.Now()
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return false, false, err
	}
	return healed, advanced, nil
}
