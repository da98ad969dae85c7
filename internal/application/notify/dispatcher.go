package notify

import (
	"sync"
	"sync/atomic"

	"github.com/invorya/stock-ledger/internal/application/ledger"
	"github.com/invorya/stock-ledger/pkg/logger"
)

// AlertNotifier puerto de entrega de alertas a operadores. La entrega real
// (email/SMS) queda fuera de este servicio; LogNotifier deja el rastro en el log.
type AlertNotifier interface {
	Notify(ev ledger.AlertEvent)
}

// Dispatcher consume eventos confirmados del ledger en una goroutine propia y los
// entrega a los consumidores downstream: rastro de auditoría y notificador de alertas.
// La publicación nunca bloquea ni falla un RecordMovement: si el buffer está lleno,
// el evento se descarta y se cuenta.
type Dispatcher struct {
	ch       chan any
	log      *logger.Logger
	notifier AlertNotifier
	dropped  atomic.Int64
	wg       sync.WaitGroup
	closeOne sync.Once
}

var _ ledger.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher arranca el despachador con un buffer de tamaño buffer (mínimo 1).
func NewDispatcher(log *logger.Logger, notifier AlertNotifier, buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	d := &Dispatcher{
		ch:       make(chan any, buffer),
		log:      log,
		notifier: notifier,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// MovementRecorded encola un movimiento confirmado (no bloqueante).
func (d *Dispatcher) MovementRecorded(ev ledger.MovementEvent) {
	d.enqueue(ev)
}

// AlertChanged encola una transición de alerta confirmada (no bloqueante).
func (d *Dispatcher) AlertChanged(ev ledger.AlertEvent) {
	d.enqueue(ev)
}

func (d *Dispatcher) enqueue(ev any) {
	select {
	case d.ch <- ev:
	default:
		n := d.dropped.Add(1)
		d.log.Warn().Int64("dropped_total", n).Msg("buffer de eventos lleno, evento descartado")
	}
}

// Dropped cantidad de eventos descartados por buffer lleno.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close cierra el canal y espera a que se drenen los eventos pendientes.
func (d *Dispatcher) Close() {
	d.closeOne.Do(func() { close(d.ch) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for ev := range d.ch {
		switch e := ev.(type) {
		case ledger.MovementEvent:
			d.auditMovement(e)
		case ledger.AlertEvent:
			d.auditAlert(e)
			if d.notifier != nil {
				d.notifier.Notify(e)
			}
		}
	}
}

// auditMovement escribe el rastro de auditoría del movimiento.
func (d *Dispatcher) auditMovement(ev ledger.MovementEvent) {
	d.log.Info().
		Str("movement_id", ev.MovementID).
		Str("company_id", ev.CompanyID).
		Str("product_id", ev.ProductID).
		Str("type", ev.Type).
		Str("reason", ev.Reason).
		Int64("quantity", ev.Quantity).
		Int64("balance", ev.Balance).
		Str("actor_id", ev.ActorID).
		Bool("correction", ev.Correction).
		Time("occurred_at", ev.OccurredAt).
		Msg("movimiento de stock registrado")
}

func (d *Dispatcher) auditAlert(ev ledger.AlertEvent) {
	d.log.Info().
		Str("alert_id", ev.AlertID).
		Str("company_id", ev.CompanyID).
		Str("product_id", ev.ProductID).
		Str("from", ev.From).
		Str("to", ev.To).
		Int64("current_stock", ev.CurrentStock).
		Int64("threshold", ev.Threshold).
		Msg("transición de alerta de stock")
}

// LogNotifier implementación de AlertNotifier que registra la alerta en el log.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify registra la alerta como notificación a operadores.
func (n *LogNotifier) Notify(ev ledger.AlertEvent) {
	n.log.Warn().
		Str("product_id", ev.ProductID).
		Str("severity", ev.To).
		Int64("current_stock", ev.CurrentStock).
		Int64("threshold", ev.Threshold).
		Msg("notificación de alerta de stock")
}
