package mutation

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"pet-welfare-dashboard/internal/domain/animals"
	"pet-welfare-dashboard/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu      sync.Mutex
	added   []animals.AnimalRecord
	deleted []int
	addErr  error
	delErr  error
}

func (f *fakeRemote) AddAnimal(ctx context.Context, rec animals.AnimalRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, rec)
	return nil
}

func (f *fakeRemote) DeleteAnimal(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type countingReloader struct {
	mu    sync.Mutex
	count int
}

func (r *countingReloader) Reload(ctx context.Context) <-chan struct{} {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
	done := make(chan struct{})
	close(done)
	return done
}

func (r *countingReloader) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

type fakeNotifier struct {
	events []Event
	err    error
}

func (n *fakeNotifier) Publish(ctx context.Context, ev Event) error {
	n.events = append(n.events, ev)
	return n.err
}

func intp(v int) *int { return &v }

func validAnimal(id int) animals.NewAnimal {
	return animals.NewAnimal{ID: intp(id), OrgID: intp(1), Species: "Dog", Sex: "m", AgeMonths: intp(6)}
}

func TestCreateAnimal_SuccessReloadsAffectedAndPublishes(t *testing.T) {
	remote := &fakeRemote{}
	list, stats := &countingReloader{}, &countingReloader{}
	notifier := &fakeNotifier{}
	c := NewCoordinator(remote, Options{Affected: []Reloader{list, stats}, Notifier: notifier, Origin: "dash-1"})

	err := c.CreateAnimal(context.Background(), validAnimal(2))
	require.NoError(t, err)

	require.Len(t, remote.added, 1)
	assert.Equal(t, animals.SexMale, remote.added[0].Sex)
	assert.Equal(t, 1, list.Count())
	assert.Equal(t, 1, stats.Count())
	assert.Equal(t, StatusSucceeded, c.State(KindCreate).Status)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, KindCreate, notifier.events[0].Kind)
	assert.Equal(t, 2, notifier.events[0].AnimalID)
	assert.Equal(t, "dash-1", notifier.events[0].Origin)
	assert.NotEmpty(t, notifier.events[0].ID)
}

func TestCreateAnimal_ValidationFailsWithoutNetwork(t *testing.T) {
	remote := &fakeRemote{}
	list := &countingReloader{}
	c := NewCoordinator(remote, Options{Affected: []Reloader{list}})

	err := c.CreateAnimal(context.Background(), animals.NewAnimal{Species: "Dog"})

	var verr *animals.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, remote.added)
	assert.Equal(t, 0, list.Count())

	st := c.State(KindCreate)
	assert.Equal(t, StatusFailed, st.Status)
	require.NotNil(t, st.Error)
}

func TestCreateAnimal_ServerErrorTriggersNoReload(t *testing.T) {
	remote := &fakeRemote{addErr: &httpclient.HTTPError{StatusCode: http.StatusInternalServerError}}
	list, stats := &countingReloader{}, &countingReloader{}
	notifier := &fakeNotifier{}
	c := NewCoordinator(remote, Options{Affected: []Reloader{list, stats}, Notifier: notifier})

	err := c.CreateAnimal(context.Background(), validAnimal(2))

	var herr *httpclient.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 0, list.Count())
	assert.Equal(t, 0, stats.Count())
	assert.Empty(t, notifier.events)
	assert.Equal(t, StatusFailed, c.State(KindCreate).Status)
	assert.Equal(t, StatusIdle, c.State(KindDelete).Status, "other mutation kinds untouched")
}

func TestDeleteAnimal_SuccessAndFailure(t *testing.T) {
	remote := &fakeRemote{}
	list := &countingReloader{}
	c := NewCoordinator(remote, Options{Affected: []Reloader{list}})

	require.NoError(t, c.DeleteAnimal(context.Background(), 1))
	assert.Equal(t, []int{1}, remote.deleted)
	assert.Equal(t, 1, list.Count())
	assert.Equal(t, State{Status: StatusSucceeded, AnimalID: 1}, withoutTime(c.State(KindDelete)))

	remote.delErr = &httpclient.HTTPError{StatusCode: http.StatusNotFound}
	err := c.DeleteAnimal(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, 1, list.Count())
	assert.Equal(t, StatusFailed, c.State(KindDelete).Status)
}

func TestCreateAnimal_PublishFailureDoesNotFailMutation(t *testing.T) {
	remote := &fakeRemote{}
	c := NewCoordinator(remote, Options{Notifier: &fakeNotifier{err: errors.New("nats down")}})

	require.NoError(t, c.CreateAnimal(context.Background(), validAnimal(3)))
	assert.Equal(t, StatusSucceeded, c.State(KindCreate).Status)
}

func TestReloadAffected_ReturnsOnContextCancel(t *testing.T) {
	never := ReloadFunc(func(ctx context.Context) <-chan struct{} { return make(chan struct{}) })
	c := NewCoordinator(&fakeRemote{}, Options{Affected: []Reloader{never}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.ReloadAffected(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func withoutTime(s State) State {
	s.UpdatedAt = time.Time{}
	return s
}

func TestCreateAnimal_ValidationFailureSkipsSubmitting(t *testing.T) {
	c := NewCoordinator(&fakeRemote{}, Options{})

	// cada transición de estado pasa por c.now una vez
	transitions := 0
	c.now = func() time.Time {
		transitions++
		return time.Time{}
	}

	err := c.CreateAnimal(context.Background(), animals.NewAnimal{Species: "Dog"})
	require.Error(t, err)
	assert.Equal(t, 1, transitions, "only the failed transition")
	assert.Equal(t, StatusFailed, c.State(KindCreate).Status)

	transitions = 0
	require.NoError(t, c.CreateAnimal(context.Background(), validAnimal(5)))
	assert.Equal(t, 2, transitions, "submitting then succeeded")
}
