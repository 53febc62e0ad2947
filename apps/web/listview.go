package web

import (
	"context"
	"net/url"
	"sync"

	"github.com/pkg/errors"

	"github.com/careerpath/frontend/core"
	"github.com/careerpath/frontend/core/catalog"
	"github.com/careerpath/frontend/services/api"
)

// ListResource is the slice of an entity's endpoints a list page needs.
type ListResource[T any] interface {
	AdminList(ctx context.Context, q url.Values) ([]T, *api.Envelope, error)
	Update(ctx context.Context, id string, payload interface{}) (T, error)
	Delete(ctx context.Context, id string) error
}

type ListViewOptions struct {
	Gate    *AuthGate
	Route   string // collection route, eg "/admin/courses"
	Confirm ConfirmFunc
	Alert   AlertFunc
	Logger  core.Logger
}

// ListView is the state behind an admin list page: one fetched collection,
// one client-side filter recomputed over it, and the row actions.
//
// Fetches are guarded by a generation counter: when filters change faster
// than responses arrive, only the newest fetch may write state — a slow stale
// response is discarded instead of overwriting newer data.
type ListView[T any, PT catalog.RowPtr[T]] struct {
	res  ListResource[T]
	opts ListViewOptions

	mu      sync.Mutex
	gen     uint64
	loading bool
	loadErr error
	items   []T
	env     *api.Envelope
	query   url.Values // server-understood params; changing them refetches
	filter  catalog.QueryFilter
}

func NewListView[T any, PT catalog.RowPtr[T]](res ListResource[T], opts ListViewOptions) *ListView[T, PT] {
	return &ListView[T, PT]{res: res, opts: opts}
}

// Mount runs the page's initial render: gate first, fetch only if allowed.
func (lv *ListView[T, PT]) Mount(ctx context.Context) error {
	if lv.opts.Gate != nil && !lv.opts.Gate.Allow() {
		return nil
	}
	return lv.Refresh(ctx)
}

// Refresh fetches the full unfiltered collection. It doubles as the retry
// affordance after a load failure.
func (lv *ListView[T, PT]) Refresh(ctx context.Context) error {
	lv.mu.Lock()
	lv.gen++
	gen := lv.gen
	lv.loading = true
	lv.loadErr = nil
	q := cloneValues(lv.query)
	lv.mu.Unlock()

	items, env, err := lv.res.AdminList(ctx, q)

	lv.mu.Lock()
	defer lv.mu.Unlock()
	if gen != lv.gen {
		return nil // superseded; a newer fetch owns the state now
	}
	lv.loading = false
	if err == nil && env != nil && !env.Success {
		// a 200 carrying {success:false} is still a failed load
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		err = errors.New(msg)
	}
	if err != nil {
		lv.loadErr = err
		lv.items = nil
		lv.env = nil
		return err
	}
	lv.items = items
	lv.env = env
	return nil
}

// SetQuery replaces the server-side params (examType, type, year...) and
// refetches.
func (lv *ListView[T, PT]) SetQuery(ctx context.Context, q url.Values) error {
	lv.mu.Lock()
	lv.query = cloneValues(q)
	lv.mu.Unlock()
	return lv.Refresh(ctx)
}

// SetFilter replaces the client-side filter; no refetch, the visible view is
// just recomputed from the stored collection.
func (lv *ListView[T, PT]) SetFilter(f catalog.QueryFilter) {
	f.Clean()
	lv.mu.Lock()
	lv.filter = f
	lv.mu.Unlock()
}

func (lv *ListView[T, PT]) Loading() bool {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return lv.loading
}

// Err is the page-level load failure, if any; no partial data is shown
// alongside it.
func (lv *ListView[T, PT]) Err() error {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return lv.loadErr
}

// Rows returns the full stored collection.
func (lv *ListView[T, PT]) Rows() []T {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	rows := make([]T, len(lv.items))
	copy(rows, lv.items)
	return rows
}

// Visible returns the filtered view of the stored collection.
func (lv *ListView[T, PT]) Visible() []T {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return catalog.ApplyFilter[T, PT](lv.items, lv.filter)
}

// Stats reduces over the stored collection, independent of the filter.
func (lv *ListView[T, PT]) Stats() catalog.Stats {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return catalog.ComputeStats[T, PT](lv.items)
}

// Envelope exposes server-attached list metadata (server stats, offered
// filter options), when present.
func (lv *ListView[T, PT]) Envelope() *api.Envelope {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return lv.env
}

// EditRoute is the edit-navigation row action; pure navigation, no state
// change.
func (lv *ListView[T, PT]) EditRoute(id string) string {
	return lv.opts.Route + "/" + id + "/edit"
}

// Toggle flips one boolean flag via a partial PUT. Local state is patched
// only after the server confirms; a failed request leaves the displayed value
// untouched, so there is nothing to roll back.
func (lv *ListView[T, PT]) Toggle(ctx context.Context, id, field string) error {
	lv.mu.Lock()
	m, found := catalog.MetaByID[T, PT](lv.items, id)
	lv.mu.Unlock()
	if !found {
		return errors.Errorf("no row with id %q", id)
	}
	current, ok := m.Flag(field)
	if !ok {
		return errors.Errorf("%q is not a toggleable field", field)
	}
	next := !current

	if _, err := lv.res.Update(ctx, id, map[string]interface{}{field: next}); err != nil {
		lv.fail("toggling "+field, err)
		return err
	}

	lv.mu.Lock()
	lv.items, _ = catalog.PatchByID[T, PT](lv.items, id, func(row *T) {
		PT(row).RowMeta().SetFlag(field, next)
	})
	lv.mu.Unlock()
	return nil
}

// Delete asks for confirmation, then removes the row remotely and — only on
// success — locally. A declined confirmation is a no-op.
func (lv *ListView[T, PT]) Delete(ctx context.Context, id string) error {
	if lv.opts.Confirm != nil && !lv.opts.Confirm("Are you sure you want to delete this item?") {
		return nil
	}
	if err := lv.res.Delete(ctx, id); err != nil {
		lv.fail("deleting row", err)
		return err
	}

	lv.mu.Lock()
	lv.items, _ = catalog.RemoveByID[T, PT](lv.items, id)
	lv.mu.Unlock()
	return nil
}

func (lv *ListView[T, PT]) fail(op string, err error) {
	if lv.opts.Logger != nil {
		lv.opts.Logger.Warn(op+" failed", err)
	}
	if lv.opts.Alert != nil {
		lv.opts.Alert(api.ErrorMessage(err))
	}
}

func cloneValues(q url.Values) url.Values {
	if q == nil {
		return nil
	}
	out := make(url.Values, len(q))
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
