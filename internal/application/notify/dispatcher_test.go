package notify_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stock-ledger/internal/application/ledger"
	"github.com/invorya/stock-ledger/internal/application/notify"
	"github.com/invorya/stock-ledger/pkg/logger"
)

// countingNotifier cuenta las alertas entregadas.
type countingNotifier struct {
	mu     sync.Mutex
	events []ledger.AlertEvent
}

func (n *countingNotifier) Notify(ev ledger.AlertEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func TestDispatcher_EntregaAlertasAlNotifier(t *testing.T) {
	notifier := &countingNotifier{}
	d := notify.NewDispatcher(logger.NewNop(), notifier, 16)

	d.AlertChanged(ledger.AlertEvent{
		AlertID: "a1", ProductID: "p1", From: "NORMAL", To: "LOW_STOCK",
		CurrentStock: 3, Threshold: 5, OccurredAt: time.Now(),
	})
	d.MovementRecorded(ledger.MovementEvent{MovementID: "m1", ProductID: "p1", Quantity: -2})
	d.Close()

	require.Equal(t, 1, notifier.count(), "solo los eventos de alerta llegan al notifier")
	assert.Equal(t, "LOW_STOCK", notifier.events[0].To)
	assert.Equal(t, int64(0), d.Dropped())
}

func TestDispatcher_BufferLleno_DescartaSinBloquear(t *testing.T) {
	// Notifier lento y buffer de 1: las publicaciones extra deben descartarse,
	// nunca bloquear al publicador.
	blocked := make(chan struct{})
	slow := &blockingNotifier{release: blocked}
	d := notify.NewDispatcher(logger.NewNop(), slow, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			d.AlertChanged(ledger.AlertEvent{AlertID: "x", To: "LOW_STOCK"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("la publicación bloqueó con el buffer lleno")
	}
	close(blocked)
	d.Close()

	assert.Greater(t, d.Dropped(), int64(0), "con el buffer lleno se cuentan descartes")
}

func TestDispatcher_CloseEsIdempotente(t *testing.T) {
	d := notify.NewDispatcher(logger.NewNop(), nil, 4)
	d.MovementRecorded(ledger.MovementEvent{MovementID: "m1"})
	d.Close()
	d.Close() // segunda llamada no debe entrar en pánico
}

// blockingNotifier se queda bloqueado hasta que se cierra release.
type blockingNotifier struct {
	release chan struct{}
}

func (n *blockingNotifier) Notify(ledger.AlertEvent) {
	<-n.release
}
