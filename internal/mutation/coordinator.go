// Package mutation ejecuta create/delete contra el backend y recarga las vistas afectadas.
package mutation

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-welfare-dashboard/internal/domain/animals"
	"pet-welfare-dashboard/internal/platform/logger"
	"pet-welfare-dashboard/internal/platform/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Kind string

const (
	KindCreate Kind = "create"
	KindDelete Kind = "delete"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// State es el estado de la última mutación de un tipo.
type State struct {
	Status    Status    `json:"status"`
	AnimalID  int       `json:"animalId,omitempty"`
	Error     *string   `json:"error"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event se publica después de una mutación exitosa.
type Event struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	AnimalID int       `json:"animalId"`
	At       time.Time `json:"at"`
	Origin   string    `json:"origin,omitempty"`
}

// Remote es el subconjunto de welfareapi.Client que muta.
type Remote interface {
	AddAnimal(ctx context.Context, rec animals.AnimalRecord) error
	DeleteAnimal(ctx context.Context, id int) error
}

// Reloader es una vista que se puede recargar; el canal se cierra al resolver.
type Reloader interface {
	Reload(ctx context.Context) <-chan struct{}
}

type ReloadFunc func(ctx context.Context) <-chan struct{}

func (f ReloadFunc) Reload(ctx context.Context) <-chan struct{} { return f(ctx) }

// Notifier avisa a otras instancias (NATS). Opcional.
type Notifier interface {
	Publish(ctx context.Context, ev Event) error
}

type Options struct {
	// Vistas cuyo contenido puede cambiar por un create/delete.
	Affected []Reloader

	Notifier Notifier
	Origin   string

	Log     logger.Logger
	Metrics *metrics.Metrics
}

type Coordinator struct {
	remote   Remote
	affected []Reloader
	notifier Notifier
	origin   string
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	mu     sync.RWMutex
	states map[Kind]State
}

func NewCoordinator(remote Remote, opts Options) *Coordinator {
	l := opts.Log
	if l == nil {
		l = logger.Nop()
	}
	return &Coordinator{
		remote:   remote,
		affected: opts.Affected,
		notifier: opts.Notifier,
		origin:   opts.Origin,
		log:      l,
		metrics:  opts.Metrics,
		now:      time.Now,
		states: map[Kind]State{
			KindCreate: {Status: StatusIdle},
			KindDelete: {Status: StatusIdle},
		},
	}
}

// State devuelve el estado actual de un tipo de mutación.
func (c *Coordinator) State(kind Kind) State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.states[kind]
}

// CreateAnimal: valida presencia de campos (sin red), inserta y recarga.
// Un conflicto del backend (id duplicado, org inexistente) llega como *httpclient.HTTPError.
func (c *Coordinator) CreateAnimal(ctx context.Context, in animals.NewAnimal) error {
	// sin campos requeridos no hay envío: Idle -> Failed directo
	if err := in.Validate(); err != nil {
		c.fail(KindCreate, 0, err)
		return err
	}
	rec := in.Record()
	c.set(KindCreate, State{Status: StatusSubmitting, AnimalID: rec.ID})

	if err := c.remote.AddAnimal(ctx, rec); err != nil {
		c.fail(KindCreate, rec.ID, err)
		return err
	}

	c.succeed(ctx, KindCreate, rec.ID)
	return nil
}

// DeleteAnimal asume que la confirmación del usuario ya ocurrió.
func (c *Coordinator) DeleteAnimal(ctx context.Context, id int) error {
	c.set(KindDelete, State{Status: StatusSubmitting, AnimalID: id})

	if err := c.remote.DeleteAnimal(ctx, id); err != nil {
		c.fail(KindDelete, id, err)
		return err
	}

	c.succeed(ctx, KindDelete, id)
	return nil
}

// ReloadAffected dispara la recarga de todas las vistas afectadas y espera
// a que resuelvan (o a que ctx se cancele). Las cargas en sí no se cancelan.
func (c *Coordinator) ReloadAffected(ctx context.Context) error {
	loadCtx := context.WithoutCancel(ctx)

	dones := make([]<-chan struct{}, 0, len(c.affected))
	for _, r := range c.affected {
		dones = append(dones, r.Reload(loadCtx))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, done := range dones {
		done := done
		g.Go(func() error {
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return g.Wait()
}

func (c *Coordinator) succeed(ctx context.Context, kind Kind, animalID int) {
	c.set(kind, State{Status: StatusSucceeded, AnimalID: animalID})
	c.metrics.ObserveMutation(string(kind), "ok")
	c.log.Info("mutation succeeded", map[string]any{
		"kind":      kind,
		"animal_id": animalID,
	})

	if err := c.ReloadAffected(ctx); err != nil && !errors.Is(err, context.Canceled) {
		c.log.Warn("waiting for reloads", map[string]any{"kind": kind, "error": err.Error()})
	}

	if c.notifier == nil {
		return
	}
	ev := Event{
		ID:       uuid.NewString(),
		Kind:     kind,
		AnimalID: animalID,
		At:       c.now().UTC(),
		Origin:   c.origin,
	}
	if err := c.notifier.Publish(ctx, ev); err != nil {
		// la mutación ya se hizo; solo se pierde el aviso a otras instancias
		c.log.Warn("publish mutation event failed", map[string]any{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}

func (c *Coordinator) fail(kind Kind, animalID int, err error) {
	msg := err.Error()
	c.set(kind, State{Status: StatusFailed, AnimalID: animalID, Error: &msg})
	c.metrics.ObserveMutation(string(kind), "failed")
	c.log.Warn("mutation failed", map[string]any{
		"kind":      kind,
		"animal_id": animalID,
		"error":     msg,
	})
}

func (c *Coordinator) set(kind Kind, s State) {
	s.UpdatedAt = c.now()
	c.mu.Lock()
	c.states[kind] = s
	c.mu.Unlock()
}
