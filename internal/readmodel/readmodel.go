// Package readmodel implementa el contenedor {data, loading, error} de cada vista.
package readmodel

import (
	"context"
	"sync"

	"pet-welfare-dashboard/internal/platform/logger"
	"pet-welfare-dashboard/internal/platform/metrics"
)

// State es la foto que lee la capa de presentación.
// Data es el último payload exitoso, tal cual llegó: no modificar.
type State[T any] struct {
	Data    []T     `json:"data"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`

	// Version sube en cada transición exitosa (clave de memoización).
	Version uint64 `json:"version"`
	// Generation sube cada vez que se dispara un Load.
	Generation uint64 `json:"generation"`
}

// FetchFunc trae el payload completo de la vista.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

type options struct {
	staleGuard bool
	log        logger.Logger
	metrics    *metrics.Metrics
	onChange   func(view string)
}

type Option func(*options)

// WithStaleGuard descarta resoluciones de un Load que ya fue superado por otro.
// Sin esta opción gana el último en resolver.
func WithStaleGuard(enabled bool) Option {
	return func(o *options) { o.staleGuard = enabled }
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// OnChange se llama (fuera del lock) después de cada transición.
func OnChange(fn func(view string)) Option {
	return func(o *options) { o.onChange = fn }
}

// Model es dueño exclusivo del estado de una vista.
type Model[T any] struct {
	name string
	opts options

	mu    sync.RWMutex
	state State[T]
}

func New[T any](name string, opts ...Option) *Model[T] {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	return &Model[T]{
		name:  name,
		opts:  o,
		state: State[T]{Data: []T{}},
	}
}

func (m *Model[T]) Name() string { return m.name }

// Snapshot nunca espera a un fetch en curso.
func (m *Model[T]) Snapshot() State[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Load pone loading=true antes de volver y resuelve en background.
// No deduplica ni cancela: dos Load concurrentes compiten.
// El canal devuelto se cierra después de aplicar la transición.
func (m *Model[T]) Load(ctx context.Context, fetch FetchFunc[T]) <-chan struct{} {
	m.mu.Lock()
	m.state.Loading = true
	m.state.Generation++
	gen := m.state.Generation
	m.mu.Unlock()
	m.changed()

	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := fetch(ctx)
		m.resolve(gen, data, err)
	}()
	return done
}

func (m *Model[T]) resolve(gen uint64, data []T, err error) {
	m.mu.Lock()
	if m.opts.staleGuard && gen != m.state.Generation {
		latest := m.state.Generation
		m.mu.Unlock()
		m.opts.metrics.ObserveViewLoad(m.name, "stale")
		m.opts.log.Debug("discarding stale load", map[string]any{
			"view":       m.name,
			"generation": gen,
			"latest":     latest,
		})
		return
	}

	m.state.Loading = false
	if err != nil {
		// data queda como estaba
		msg := err.Error()
		m.state.Error = &msg
	} else {
		if data == nil {
			data = []T{}
		}
		m.state.Data = data
		m.state.Error = nil
		m.state.Version++
	}
	rows := len(m.state.Data)
	m.mu.Unlock()

	if err != nil {
		m.opts.metrics.ObserveViewLoad(m.name, "failed")
		m.opts.log.Warn("view load failed", map[string]any{
			"view":  m.name,
			"error": err.Error(),
		})
	} else {
		m.opts.metrics.ObserveViewLoad(m.name, "ok")
		m.opts.log.Debug("view loaded", map[string]any{
			"view": m.name,
			"rows": rows,
		})
	}
	m.changed()
}

func (m *Model[T]) changed() {
	if m.opts.onChange != nil {
		m.opts.onChange(m.name)
	}
}
