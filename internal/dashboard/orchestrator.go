// Package dashboard es la raíz de composición: dueño de las vistas, filtros
// y formulario, conecta acciones del usuario con cargas y mutaciones.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"pet-welfare-dashboard/internal/domain/animals"
	"pet-welfare-dashboard/internal/mutation"
	"pet-welfare-dashboard/internal/platform/logger"
	"pet-welfare-dashboard/internal/platform/metrics"
	"pet-welfare-dashboard/internal/readmodel"

	"golang.org/x/sync/errgroup"
)

// Nombres de vista (también son los labels de métricas).
const (
	ViewAnimals          = "animals"
	ViewSpeciesCounts    = "speciesCounts"
	ViewWelfareFollowUps = "welfareFollowUps"
	ViewAdoptionStats    = "adoptionStats"
)

// Textos de estado del formulario.
const (
	StatusFillAllFields = "Please fill in all fields."
	StatusAnimalAdded   = "Animal added successfully."
	statusErrorPrefix   = "Error: "
)

var (
	ErrNotConfirmed = errors.New("delete not confirmed")
	ErrInvalidForm  = errors.New("invalid form")
)

// Source es el backend remoto tipado (welfareapi.Client).
type Source interface {
	Animals(ctx context.Context) ([]animals.AnimalRecord, error)
	SpeciesCounts(ctx context.Context) ([]animals.SpeciesCountRow, error)
	WelfareFollowUps(ctx context.Context, species string) ([]animals.WelfareFollowUpRow, error)
	AdoptionStats(ctx context.Context, state string) ([]animals.AdoptionStatRow, error)
	AddAnimal(ctx context.Context, rec animals.AnimalRecord) error
	DeleteAnimal(ctx context.Context, id int) error
}

// Confirmer resuelve la confirmación de un borrado fuera de banda
// (query param en la API, prompt en la CLI).
type Confirmer interface {
	Confirm(ctx context.Context, animalID int) bool
}

type ConfirmFunc func(ctx context.Context, animalID int) bool

func (f ConfirmFunc) Confirm(ctx context.Context, animalID int) bool { return f(ctx, animalID) }

// Confirmed devuelve un Confirmer con respuesta fija.
func Confirmed(ok bool) Confirmer {
	return ConfirmFunc(func(context.Context, int) bool { return ok })
}

// AnimalForm son los campos tal cual los tipeó el usuario.
type AnimalForm struct {
	ID        string `json:"id"`
	OrgID     string `json:"orgId"`
	Species   string `json:"species"`
	Sex       string `json:"sex"`
	AgeMonths string `json:"ageMonths"`
}

func (f AnimalForm) complete() bool {
	for _, v := range []string{f.ID, f.OrgID, f.Species, f.Sex, f.AgeMonths} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func (f AnimalForm) parse() (animals.NewAnimal, error) {
	id, err := parseInt("id", f.ID)
	if err != nil {
		return animals.NewAnimal{}, err
	}
	orgID, err := parseInt("orgId", f.OrgID)
	if err != nil {
		return animals.NewAnimal{}, err
	}
	age, err := parseInt("ageMonths", f.AgeMonths)
	if err != nil {
		return animals.NewAnimal{}, err
	}
	// microchip y notes no están en el formulario: viajan como null
	return animals.NewAnimal{
		ID:        &id,
		OrgID:     &orgID,
		Species:   strings.TrimSpace(f.Species),
		Sex:       animals.ParseSex(f.Sex),
		AgeMonths: &age,
	}, nil
}

func parseInt(field, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidForm, field)
	}
	return n, nil
}

// Filters es la selección actual de cada vista. "All" = sin filtro.
type Filters struct {
	Species        string `json:"species"`
	WelfareSpecies string `json:"welfareSpecies"`
	AdoptionState  string `json:"adoptionState"`
}

// View es la foto consolidada que consume la capa de presentación.
type View struct {
	Animals          readmodel.State[animals.AnimalRecord]       `json:"animals"`
	VisibleAnimals   []animals.AnimalRecord                      `json:"visibleAnimals"`
	SpeciesCounts    readmodel.State[animals.SpeciesCountRow]    `json:"speciesCounts"`
	WelfareFollowUps readmodel.State[animals.WelfareFollowUpRow] `json:"welfareFollowUps"`
	AdoptionStats    readmodel.State[animals.AdoptionStatRow]    `json:"adoptionStats"`

	Filters     Filters        `json:"filters"`
	Form        AnimalForm     `json:"form"`
	FormStatus  string         `json:"formStatus"`
	DeleteError *string        `json:"deleteError"`
	Create      mutation.State `json:"create"`
	Delete      mutation.State `json:"delete"`
}

type Options struct {
	Log        logger.Logger
	Metrics    *metrics.Metrics
	StaleGuard bool

	// Confirmer por defecto cuando DeleteAnimal recibe nil. Sin él, todo borrado se rechaza.
	Confirmer Confirmer

	Notifier mutation.Notifier
	Origin   string
}

type Orchestrator struct {
	src       Source
	log       logger.Logger
	confirmer Confirmer

	list     *readmodel.Model[animals.AnimalRecord]
	counts   *readmodel.Model[animals.SpeciesCountRow]
	welfare  *readmodel.Model[animals.WelfareFollowUpRow]
	adoption *readmodel.Model[animals.AdoptionStatRow]

	filter animals.SpeciesFilter
	coord  *mutation.Coordinator

	mu          sync.RWMutex
	filters     Filters
	form        AnimalForm
	formStatus  string
	deleteError *string

	lmu       sync.RWMutex
	listeners []func()
}

func New(src Source, opts Options) *Orchestrator {
	l := opts.Log
	if l == nil {
		l = logger.Nop()
	}
	o := &Orchestrator{
		src:       src,
		log:       l,
		confirmer: opts.Confirmer,
		filters:   Filters{Species: animals.All, WelfareSpecies: animals.All, AdoptionState: animals.All},
	}

	rmOpts := []readmodel.Option{
		readmodel.WithStaleGuard(opts.StaleGuard),
		readmodel.WithLogger(l),
		readmodel.WithMetrics(opts.Metrics),
		readmodel.OnChange(func(string) { o.notify() }),
	}
	o.list = readmodel.New[animals.AnimalRecord](ViewAnimals, rmOpts...)
	o.counts = readmodel.New[animals.SpeciesCountRow](ViewSpeciesCounts, rmOpts...)
	o.welfare = readmodel.New[animals.WelfareFollowUpRow](ViewWelfareFollowUps, rmOpts...)
	o.adoption = readmodel.New[animals.AdoptionStatRow](ViewAdoptionStats, rmOpts...)

	// create/delete solo pueden cambiar la lista y el conteo por especie
	o.coord = mutation.NewCoordinator(src, mutation.Options{
		Affected: []mutation.Reloader{
			mutation.ReloadFunc(o.loadAnimals),
			mutation.ReloadFunc(o.loadSpeciesCounts),
		},
		Notifier: opts.Notifier,
		Origin:   opts.Origin,
		Log:      l,
		Metrics:  opts.Metrics,
	})
	return o
}

// OnChange registra un listener que corre después de cada cambio de estado.
func (o *Orchestrator) OnChange(fn func()) {
	o.lmu.Lock()
	o.listeners = append(o.listeners, fn)
	o.lmu.Unlock()
}

func (o *Orchestrator) notify() {
	o.lmu.RLock()
	ls := append([]func(){}, o.listeners...)
	o.lmu.RUnlock()
	for _, fn := range ls {
		fn()
	}
}

// Mount carga lista y conteos en paralelo y espera a que ambas resuelvan.
// Los errores de carga quedan en cada vista; solo se devuelve el de ctx.
func (o *Orchestrator) Mount(ctx context.Context) error {
	loadCtx := context.WithoutCancel(ctx)
	dones := []<-chan struct{}{o.loadAnimals(loadCtx), o.loadSpeciesCounts(loadCtx)}

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

// SetSpeciesFilter no toca la red: solo cambia el subconjunto visible.
func (o *Orchestrator) SetSpeciesFilter(v string) {
	o.setFilter(func(f *Filters) { f.Species = normalize(v) })
}

// SetWelfareSpecies no recarga; la consulta corre con RunWelfareQuery.
func (o *Orchestrator) SetWelfareSpecies(v string) {
	o.setFilter(func(f *Filters) { f.WelfareSpecies = normalize(v) })
}

func (o *Orchestrator) SetAdoptionState(v string) {
	o.setFilter(func(f *Filters) { f.AdoptionState = normalize(v) })
}

func (o *Orchestrator) setFilter(apply func(*Filters)) {
	o.mu.Lock()
	apply(&o.filters)
	o.mu.Unlock()
	o.notify()
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return animals.All
	}
	return v
}

func (o *Orchestrator) Filters() Filters {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.filters
}

// RunWelfareQuery carga follow-ups con la especie seleccionada en ese momento.
func (o *Orchestrator) RunWelfareQuery(ctx context.Context) <-chan struct{} {
	species := o.Filters().WelfareSpecies
	return o.welfare.Load(context.WithoutCancel(ctx), func(ctx context.Context) ([]animals.WelfareFollowUpRow, error) {
		return o.src.WelfareFollowUps(ctx, species)
	})
}

func (o *Orchestrator) RunAdoptionQuery(ctx context.Context) <-chan struct{} {
	state := o.Filters().AdoptionState
	return o.adoption.Load(context.WithoutCancel(ctx), func(ctx context.Context) ([]animals.AdoptionStatRow, error) {
		return o.src.AdoptionStats(ctx, state)
	})
}

// SubmitAnimal valida el formulario, crea el animal y limpia el form si salió bien.
// El texto de estado queda disponible en View().FormStatus.
func (o *Orchestrator) SubmitAnimal(ctx context.Context, form AnimalForm) error {
	o.mu.Lock()
	o.form = form
	o.mu.Unlock()

	if !form.complete() {
		o.setFormStatus(StatusFillAllFields, nil)
		return &animals.ValidationError{Missing: missingFields(form)}
	}
	in, err := form.parse()
	if err != nil {
		o.setFormStatus(statusErrorPrefix+err.Error(), nil)
		return err
	}

	if err := o.coord.CreateAnimal(ctx, in); err != nil {
		o.setFormStatus(statusErrorPrefix+err.Error(), nil)
		return err
	}

	o.setFormStatus(StatusAnimalAdded, &AnimalForm{})
	return nil
}

func missingFields(f AnimalForm) []string {
	var out []string
	for _, p := range []struct{ name, v string }{
		{"id", f.ID}, {"orgId", f.OrgID}, {"species", f.Species}, {"sex", f.Sex}, {"ageMonths", f.AgeMonths},
	} {
		if strings.TrimSpace(p.v) == "" {
			out = append(out, p.name)
		}
	}
	return out
}

func (o *Orchestrator) setFormStatus(status string, form *AnimalForm) {
	o.mu.Lock()
	o.formStatus = status
	if form != nil {
		o.form = *form
	}
	o.mu.Unlock()
	o.notify()
}

// DeleteAnimal pide confirmación y recién después llama al backend.
// confirm nil => se usa el Confirmer de Options.
func (o *Orchestrator) DeleteAnimal(ctx context.Context, id int, confirm Confirmer) error {
	if confirm == nil {
		confirm = o.confirmer
	}
	if confirm == nil || !confirm.Confirm(ctx, id) {
		return ErrNotConfirmed
	}

	err := o.coord.DeleteAnimal(ctx, id)

	o.mu.Lock()
	if err != nil {
		msg := err.Error()
		o.deleteError = &msg
	} else {
		o.deleteError = nil
	}
	o.mu.Unlock()
	o.notify()
	return err
}

// HandleRemoteMutation recarga las vistas afectadas cuando otra instancia mutó.
func (o *Orchestrator) HandleRemoteMutation(ctx context.Context, ev mutation.Event) error {
	o.log.Info("remote mutation received", map[string]any{
		"kind":      ev.Kind,
		"animal_id": ev.AnimalID,
		"origin":    ev.Origin,
	})
	return o.coord.ReloadAffected(ctx)
}

// Refresh vuelve a cargar lista y conteos sin esperar.
func (o *Orchestrator) Refresh(ctx context.Context) {
	loadCtx := context.WithoutCancel(ctx)
	o.loadAnimals(loadCtx)
	o.loadSpeciesCounts(loadCtx)
}

func (o *Orchestrator) View() View {
	o.mu.RLock()
	filters := o.filters
	form := o.form
	status := o.formStatus
	deleteErr := o.deleteError
	o.mu.RUnlock()

	list := o.list.Snapshot()
	return View{
		Animals:          list,
		VisibleAnimals:   o.filter.Apply(list.Version, list.Data, filters.Species),
		SpeciesCounts:    o.counts.Snapshot(),
		WelfareFollowUps: o.welfare.Snapshot(),
		AdoptionStats:    o.adoption.Snapshot(),
		Filters:          filters,
		Form:             form,
		FormStatus:       status,
		DeleteError:      deleteErr,
		Create:           o.coord.State(mutation.KindCreate),
		Delete:           o.coord.State(mutation.KindDelete),
	}
}

// FilterComputations expone cuántas veces se recalculó el filtro de especie.
func (o *Orchestrator) FilterComputations() int {
	return o.filter.Computations()
}

func (o *Orchestrator) loadAnimals(ctx context.Context) <-chan struct{} {
	return o.list.Load(ctx, o.src.Animals)
}

func (o *Orchestrator) loadSpeciesCounts(ctx context.Context) <-chan struct{} {
	return o.counts.Load(ctx, o.src.SpeciesCounts)
}
