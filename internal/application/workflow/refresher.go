package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/vintage-erp/pkg/logger"
)

// Refresher serializa las reconstrucciones completas de índices en un único
// worker en segundo plano. Las solicitudes que llegan mientras una
// reconstrucción está en curso se colapsan en una sola pendiente: nunca hay
// más de una reconstrucción en vuelo ni más de una en cola.
type Refresher struct {
	coordinator *Coordinator
	pending     chan struct{}
	log         *logger.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewRefresher crea el planificador sobre el coordinador dado. Hay que
// llamar a Start antes de que Trigger tenga efecto.
func NewRefresher(coordinator *Coordinator, log *logger.Logger) *Refresher {
	return &Refresher{
		coordinator: coordinator,
		pending:     make(chan struct{}, 1),
		log:         log.Component("refresher"),
		done:        make(chan struct{}),
	}
}

// Start lanza el worker. Idempotente.
func (r *Refresher) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		ctx, r.cancel = context.WithCancel(ctx)
		go r.run(ctx)
	})
}

// Trigger encola una reconstrucción. No bloquea nunca: si ya hay una
// pendiente, la solicitud se fusiona con ella.
func (r *Refresher) Trigger() {
	select {
	case r.pending <- struct{}{}:
	default:
	}
}

// CancelPending descarta la reconstrucción pendiente si aún no ha empezado.
// Una reconstrucción ya en curso siempre termina.
func (r *Refresher) CancelPending() {
	select {
	case <-r.pending:
	default:
	}
}

// Stop detiene el worker y espera a que la reconstrucción en curso, si la
// hay, termine.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		if r.cancel == nil {
			return
		}
		r.cancel()
		<-r.done
	})
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.pending:
			jobID := uuid.NewString()
			r.log.Debug().Str("job", jobID).Msg("reconstruction démarrée")
			r.coordinator.RebuildIndexes()
			r.log.Info().Str("job", jobID).Msg("reconstruction terminée")
		}
	}
}
