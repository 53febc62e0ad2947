// Package web holds the state controllers behind every page: the admin gate,
// list pages, edit forms and public detail pages. Rendering and routing stay
// outside; a shell (browser bridge, terminal client, tests) drives these and
// reads their state back.
package web

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/careerpath/frontend/core"
)

// Navigator performs route changes. Routes are plain strings; the shell owns
// actual navigation.
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// HomeRoute is where non-admin users land when an admin page rejects them.
const HomeRoute = "/"

type (
	// AlertFunc shows a blocking alert; action and validation failures
	// surface through it.
	AlertFunc func(msg string)

	// ConfirmFunc blocks for a yes/no answer before destructive actions.
	ConfirmFunc func(msg string) bool

	// AckFunc shows a blocking success acknowledgement.
	AckFunc func(msg string)
)

// validationMessage flattens a validation failure into the text the blocking
// alert shows.
func validationMessage(err error, translator ut.Translator) string {
	switch vErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		msg := ""
		for _, fErr := range vErr {
			if msg != "" {
				msg += "; "
			}
			if translator != nil {
				msg += fErr.Field() + ": " + fErr.Translate(translator)
			} else {
				msg += fErr.Field() + ": invalid value"
			}
		}
		return msg
	case *core.ValidationError:
		if len(vErr.Fields) > 0 {
			msg := ""
			for _, fErr := range vErr.Fields {
				if msg != "" {
					msg += "; "
				}
				msg += fErr.Field + ": " + fErr.Error
			}
			return msg
		}
		return vErr.Error()
	}
	return err.Error()
}
