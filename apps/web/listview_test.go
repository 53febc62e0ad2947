package web

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/frontend/core/catalog"
	"github.com/careerpath/frontend/core/session"
	"github.com/careerpath/frontend/services/api"
)

type updateCall struct {
	id      string
	payload interface{}
}

// fakeListResource implements ListResource with scriptable behavior.
type fakeListResource[T any] struct {
	mu        sync.Mutex
	listFn    func(ctx context.Context, q url.Values) ([]T, *api.Envelope, error)
	listCalls int
	updateErr error
	deleteErr error
	updates   []updateCall
	deletes   []string
}

func (f *fakeListResource[T]) AdminList(ctx context.Context, q url.Values) ([]T, *api.Envelope, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return nil, &api.Envelope{Success: true}, nil
	}
	return fn(ctx, q)
}

func (f *fakeListResource[T]) Update(ctx context.Context, id string, payload interface{}) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.updateErr != nil {
		return zero, f.updateErr
	}
	f.updates = append(f.updates, updateCall{id: id, payload: payload})
	return zero, nil
}

func (f *fakeListResource[T]) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func staticList[T any](items []T) func(context.Context, url.Values) ([]T, *api.Envelope, error) {
	return func(context.Context, url.Values) ([]T, *api.Envelope, error) {
		return items, &api.Envelope{Success: true}, nil
	}
}

func adminSession() *session.Store {
	st := session.NewStore()
	st.Set(session.Session{Token: "tok", User: &session.User{ID: "u1", Role: session.RoleAdmin}})
	return st
}

func courseRows() []catalog.Course {
	return []catalog.Course{
		{Meta: catalog.Meta{ID: "a", Title: "Banking Basics", IsActive: true}},
		{Meta: catalog.Meta{ID: "b", Title: "SSC Prep", IsActive: false}},
	}
}

func courseIDs(items []catalog.Course) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.ID)
	}
	return out
}

func TestListView_Mount_adminGate(t *testing.T) {
	res := &fakeListResource[catalog.Course]{listFn: staticList(courseRows())}

	var routes []string
	nav := NavigatorFunc(func(route string) { routes = append(routes, route) })

	// a student must be redirected home with zero fetch calls
	student := session.NewStore()
	student.Set(session.Session{Token: "tok", User: &session.User{ID: "s1", Role: session.RoleStudent}})
	lv := NewListView[catalog.Course](res, ListViewOptions{Gate: NewAuthGate(student, nav)})
	require.NoError(t, lv.Mount(context.Background()))
	assert.Equal(t, []string{HomeRoute}, routes)
	assert.Equal(t, 0, res.listCalls)
	assert.Empty(t, lv.Rows())

	// an admin fetches
	lv = NewListView[catalog.Course](res, ListViewOptions{Gate: NewAuthGate(adminSession(), nav)})
	require.NoError(t, lv.Mount(context.Background()))
	assert.Equal(t, 1, res.listCalls)
	assert.Len(t, lv.Rows(), 2)
}

func TestListView_loadFailure(t *testing.T) {
	res := &fakeListResource[catalog.Course]{
		listFn: func(context.Context, url.Values) ([]catalog.Course, *api.Envelope, error) {
			return nil, nil, &api.APIError{Status: 500, Message: "boom"}
		},
	}
	lv := NewListView[catalog.Course](res, ListViewOptions{})

	err := lv.Refresh(context.Background())
	require.Error(t, err)
	assert.Error(t, lv.Err())
	assert.Empty(t, lv.Rows(), "no partial data on load failure")
	assert.False(t, lv.Loading())

	// manual retry clears the error state
	res.listFn = staticList(courseRows())
	require.NoError(t, lv.Refresh(context.Background()))
	assert.NoError(t, lv.Err())
	assert.Len(t, lv.Rows(), 2)
}

// A 200 whose envelope says success:false must not be stored as data.
func TestListView_envelopeFailure(t *testing.T) {
	res := &fakeListResource[catalog.Course]{
		listFn: func(context.Context, url.Values) ([]catalog.Course, *api.Envelope, error) {
			return courseRows(), &api.Envelope{Wrapped: true, Success: false, Message: "down for maintenance"}, nil
		},
	}
	lv := NewListView[catalog.Course](res, ListViewOptions{})

	err := lv.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down for maintenance")
	assert.Error(t, lv.Err())
	assert.Empty(t, lv.Rows())
	assert.Nil(t, lv.Envelope())
}

func TestListView_clientFilter(t *testing.T) {
	res := &fakeListResource[catalog.Course]{listFn: staticList(courseRows())}
	lv := NewListView[catalog.Course](res, ListViewOptions{})
	require.NoError(t, lv.Refresh(context.Background()))

	lv.SetFilter(catalog.QueryFilter{Search: "bank"})
	assert.Equal(t, []string{"a"}, courseIDs(lv.Visible()))
	assert.Equal(t, 1, res.listCalls, "client-side filtering must not refetch")

	// stored collection stays complete
	assert.Equal(t, []string{"a", "b"}, courseIDs(lv.Rows()))

	// stats ignore the active filter
	assert.Equal(t, 2, lv.Stats().Total)
}

func TestListView_SetQuery_refetches(t *testing.T) {
	var gotQuery url.Values
	res := &fakeListResource[catalog.Course]{
		listFn: func(_ context.Context, q url.Values) ([]catalog.Course, *api.Envelope, error) {
			gotQuery = q
			return courseRows(), &api.Envelope{Success: true}, nil
		},
	}
	lv := NewListView[catalog.Course](res, ListViewOptions{})

	require.NoError(t, lv.SetQuery(context.Background(), url.Values{"examType": []string{"ssc"}}))
	assert.Equal(t, 1, res.listCalls)
	assert.Equal(t, "ssc", gotQuery.Get("examType"))
}

// A slow first response must not overwrite the state a faster second fetch
// already wrote.
func TestListView_staleResponseDiscarded(t *testing.T) {
	old := []catalog.Course{{Meta: catalog.Meta{ID: "old"}}}
	fresh := []catalog.Course{{Meta: catalog.Meta{ID: "fresh"}}}

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var call int
	var mu sync.Mutex

	res := &fakeListResource[catalog.Course]{}
	res.listFn = func(context.Context, url.Values) ([]catalog.Course, *api.Envelope, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-release // stall the first request
			return old, &api.Envelope{Success: true}, nil
		}
		return fresh, &api.Envelope{Success: true}, nil
	}
	lv := NewListView[catalog.Course](res, ListViewOptions{})

	done := make(chan error, 1)
	go func() { done <- lv.Refresh(context.Background()) }()
	<-firstStarted

	require.NoError(t, lv.Refresh(context.Background())) // second, faster fetch
	assert.Equal(t, []string{"fresh"}, courseIDs(lv.Rows()))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"fresh"}, courseIDs(lv.Rows()), "stale response overwrote newer state")
	assert.False(t, lv.Loading())
}

func TestListView_Toggle(t *testing.T) {
	var alerts []string
	res := &fakeListResource[catalog.Course]{listFn: staticList(courseRows())}
	lv := NewListView[catalog.Course](res, ListViewOptions{Alert: func(msg string) { alerts = append(alerts, msg) }})
	require.NoError(t, lv.Refresh(context.Background()))

	// success: the flag is patched only after server confirmation
	require.NoError(t, lv.Toggle(context.Background(), "b", catalog.FlagActive))
	rows := lv.Rows()
	assert.True(t, rows[0].IsActive)
	assert.True(t, rows[1].IsActive)
	require.Len(t, res.updates, 1)
	assert.Equal(t, "b", res.updates[0].id)
	assert.Equal(t, map[string]interface{}{"isActive": true}, res.updates[0].payload)

	// failure: displayed value stays at its pre-toggle state
	res.updateErr = &api.APIError{Status: 403, Message: "not allowed"}
	err := lv.Toggle(context.Background(), "a", catalog.FlagFeatured)
	require.Error(t, err)
	assert.False(t, lv.Rows()[0].IsFeatured)
	assert.Equal(t, []string{"not allowed"}, alerts)

	// unknown field and unknown row are caller bugs, not alerts
	assert.Error(t, lv.Toggle(context.Background(), "a", "title"))
	assert.Error(t, lv.Toggle(context.Background(), "zzz", catalog.FlagActive))
}

func TestListView_Delete(t *testing.T) {
	var alerts []string
	confirmed := true
	res := &fakeListResource[catalog.Course]{listFn: staticList(courseRows())}
	lv := NewListView[catalog.Course](res, ListViewOptions{
		Confirm: func(string) bool { return confirmed },
		Alert:   func(msg string) { alerts = append(alerts, msg) },
	})
	require.NoError(t, lv.Refresh(context.Background()))

	// declined confirmation: nothing happens
	confirmed = false
	require.NoError(t, lv.Delete(context.Background(), "a"))
	assert.Empty(t, res.deletes)
	assert.Len(t, lv.Rows(), 2)

	// confirmed: exactly one row goes, locally only after success
	confirmed = true
	require.NoError(t, lv.Delete(context.Background(), "a"))
	assert.Equal(t, []string{"a"}, res.deletes)
	assert.Equal(t, []string{"b"}, courseIDs(lv.Rows()))

	// failure: all remaining rows stay
	res.deleteErr = &api.APIError{Status: 500, Message: "boom"}
	require.Error(t, lv.Delete(context.Background(), "b"))
	assert.Equal(t, []string{"b"}, courseIDs(lv.Rows()))
	assert.Equal(t, []string{"boom"}, alerts)
}

func TestListView_EditRoute(t *testing.T) {
	lv := NewListView[catalog.Course](&fakeListResource[catalog.Course]{}, ListViewOptions{Route: "/admin/courses"})
	assert.Equal(t, "/admin/courses/c1/edit", lv.EditRoute("c1"))
}

func TestAuthGate_Watch(t *testing.T) {
	var routes []string
	st := adminSession()
	gate := NewAuthGate(st, NavigatorFunc(func(route string) { routes = append(routes, route) }))
	cancel := gate.Watch()
	defer cancel()

	assert.True(t, gate.Allow())
	assert.Empty(t, routes)

	// logging out while an admin page is open kicks the user home
	st.Clear()
	assert.Equal(t, []string{HomeRoute}, routes)
}
