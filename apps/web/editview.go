package web

import (
	"context"
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/careerpath/frontend/core/catalog"
	"github.com/careerpath/frontend/services/api"
)

// EditResource is the slice of an entity's endpoints an edit page needs.
type EditResource[T any] interface {
	AdminGet(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, payload interface{}) (T, error)
	Update(ctx context.Context, id string, payload interface{}) (T, error)
	Upload(ctx context.Context, kind, filename string, file io.Reader) (catalog.Upload, error)
}

type EditViewOptions struct {
	Gate       *AuthGate
	Nav        Navigator
	ListRoute  string // where to go after a successful save
	Alert      AlertFunc
	Ack        AckFunc
	Validate   *validator.Validate
	Translator ut.Translator
}

// EditView is the state behind a create/update form. A present id means
// update mode (load, pre-populate, PUT); an absent one means create mode
// (empty form, POST).
type EditView[T any, F catalog.Form[T]] struct {
	res  EditResource[T]
	form F
	id   string
	opts EditViewOptions

	loaded  bool
	loadErr error
}

func NewEditView[T any, F catalog.Form[T]](res EditResource[T], form F, id string, opts EditViewOptions) *EditView[T, F] {
	return &EditView[T, F]{res: res, form: form, id: id, opts: opts}
}

func (ev *EditView[T, F]) Creating() bool { return ev.id == "" }

// Form exposes the single form-state record all inputs bind to.
func (ev *EditView[T, F]) Form() F { return ev.form }

func (ev *EditView[T, F]) Loaded() bool { return ev.loaded }
func (ev *EditView[T, F]) Err() error   { return ev.loadErr }

// Load gates, then pre-populates the form in update mode. Create mode starts
// from the zero form.
func (ev *EditView[T, F]) Load(ctx context.Context) error {
	if ev.opts.Gate != nil && !ev.opts.Gate.Allow() {
		return nil
	}
	if ev.Creating() {
		ev.loaded = true
		return nil
	}

	entity, err := ev.res.AdminGet(ctx, ev.id)
	if err != nil {
		ev.loadErr = err
		return err
	}
	ev.form.Bind(entity)
	ev.loaded = true
	return nil
}

// UploadFile runs the decoupled upload sub-flow and merges the result into
// form state. It does not persist the entity; only Submit does.
func (ev *EditView[T, F]) UploadFile(ctx context.Context, kind, filename string, file io.Reader) error {
	ff, ok := any(ev.form).(catalog.FileForm)
	if !ok {
		return errors.Errorf("%T does not take file uploads", ev.form)
	}

	up, err := ev.res.Upload(ctx, kind, filename, file)
	if err != nil {
		ev.notify(api.ErrorMessage(err))
		return err
	}
	ff.ApplyUpload(up)
	return nil
}

// Submit validates client-side, then creates or updates. Validation failures
// and server failures both leave the form state exactly as it was; success
// acknowledges and navigates back to the list.
func (ev *EditView[T, F]) Submit(ctx context.Context) error {
	if err := ev.form.Validate(ev.opts.Validate, ev.Creating()); err != nil {
		ev.notify(validationMessage(err, ev.opts.Translator))
		return err
	}

	payload := ev.form.Payload()
	var err error
	if ev.Creating() {
		_, err = ev.res.Create(ctx, payload)
	} else {
		_, err = ev.res.Update(ctx, ev.id, payload)
	}
	if err != nil {
		ev.notify(api.ErrorMessage(err))
		return err
	}

	if ev.opts.Ack != nil {
		ev.opts.Ack("Saved successfully.")
	}
	if ev.opts.Nav != nil {
		ev.opts.Nav.Navigate(ev.opts.ListRoute)
	}
	return nil
}

func (ev *EditView[T, F]) notify(msg string) {
	if ev.opts.Alert != nil {
		ev.opts.Alert(msg)
	}
}
