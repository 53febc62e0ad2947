package web

import (
	"context"
	"sync"

	"github.com/careerpath/frontend/core/catalog"
	"github.com/careerpath/frontend/services/api"
)

// DetailResource is the public single-entity endpoint; the client attaches
// the auth header only when a session exists.
type DetailResource[T any] interface {
	Get(ctx context.Context, id string) (T, error)
}

// Purchaser runs the full purchase sub-flow (order, gateway, verification);
// api.PaymentFlow is the real one.
type Purchaser interface {
	Purchase(ctx context.Context, co api.Checkout) error
}

// DetailView is the state behind a public detail page. The page renders
// exactly one of the protected content or a purchase call-to-action, keyed
// off the access flag the server declared — never off entitlement logic of
// its own.
type DetailView[T any, PT catalog.RowPtr[T]] struct {
	res  DetailResource[T]
	flow Purchaser
	kind string // checkout item type: course, ebook, testseries...
	id   string

	mu      sync.Mutex
	gen     uint64
	entity  T
	loaded  bool
	loadErr error
}

func NewDetailView[T any, PT catalog.RowPtr[T]](res DetailResource[T], flow Purchaser, kind, id string) *DetailView[T, PT] {
	return &DetailView[T, PT]{res: res, flow: flow, kind: kind, id: id}
}

// Load fetches the entity; anonymous fetches are valid and come back locked.
// Guarded by a generation counter like list fetches.
func (dv *DetailView[T, PT]) Load(ctx context.Context) error {
	dv.mu.Lock()
	dv.gen++
	gen := dv.gen
	dv.loadErr = nil
	dv.mu.Unlock()

	entity, err := dv.res.Get(ctx, dv.id)

	dv.mu.Lock()
	defer dv.mu.Unlock()
	if gen != dv.gen {
		return nil
	}
	if err != nil {
		dv.loadErr = err
		return err
	}
	dv.entity = entity
	dv.loaded = true
	return nil
}

func (dv *DetailView[T, PT]) Entity() (T, bool) {
	dv.mu.Lock()
	defer dv.mu.Unlock()
	return dv.entity, dv.loaded
}

func (dv *DetailView[T, PT]) Err() error {
	dv.mu.Lock()
	defer dv.mu.Unlock()
	return dv.loadErr
}

// CanAccess reflects the server-declared access level; true unlocks the
// protected action, false renders the purchase call-to-action instead.
func (dv *DetailView[T, PT]) CanAccess() bool {
	dv.mu.Lock()
	defer dv.mu.Unlock()
	return dv.loaded && PT(&dv.entity).RowMeta().AccessLevel() == catalog.AccessFull
}

// Checkout parameterizes the payment modal for this entity.
func (dv *DetailView[T, PT]) Checkout() api.Checkout {
	dv.mu.Lock()
	defer dv.mu.Unlock()
	m := PT(&dv.entity).RowMeta()
	return api.Checkout{
		ID:    m.ID,
		Title: m.Title,
		Price: m.Price,
		Type:  dv.kind,
		Image: m.Image,
	}
}

// Purchase runs the payment sub-flow and then refetches, so the access flag
// reflects the new entitlement without a manual refresh.
func (dv *DetailView[T, PT]) Purchase(ctx context.Context) error {
	if dv.CanAccess() {
		return nil // nothing to buy
	}
	if err := dv.flow.Purchase(ctx, dv.Checkout()); err != nil {
		return err
	}
	return dv.Load(ctx)
}
