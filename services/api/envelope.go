package api

import (
	"bytes"
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Two response shapes exist: a bare JSON array, and an envelope
// `{success, data|<domain key>, message?, filters?, stats?}`. Both are decoded
// here, once, so nothing downstream ever branches on shape.

// ListStats is the server-computed summary some admin endpoints attach.
type ListStats struct {
	Total     int     `mapstructure:"total"`
	Active    int     `mapstructure:"active"`
	Revenue   float64 `mapstructure:"revenue"`
	Downloads int     `mapstructure:"downloads"`
}

// ListFilters are the filter options the server offers for its own
// query-string params.
type ListFilters struct {
	Categories []string `mapstructure:"categories"`
	ExamTypes  []string `mapstructure:"examTypes"`
	Years      []string `mapstructure:"years"`
}

type Envelope struct {
	Wrapped bool // false for bare-array responses
	Success bool
	Message string
	Stats   *ListStats
	Filters *ListFilters
}

var errUnexpectedShape = errors.New("unexpected response shape")

func decodeList[T any](data []byte, domainKey string) ([]T, *Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, errors.Wrap(errUnexpectedShape, "empty response")
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, errors.Wrap(err, "decoding bare array")
		}
		return items, &Envelope{Success: true}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, nil, errors.Wrap(err, "decoding envelope")
	}

	env := &Envelope{Wrapped: true, Success: true}
	if raw, ok := fields["success"]; ok {
		_ = json.Unmarshal(raw, &env.Success)
	}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &env.Message)
	}

	itemsRaw, ok := fields["data"]
	if !ok && domainKey != "" {
		itemsRaw, ok = fields[domainKey]
	}
	if !ok {
		return nil, nil, errors.Wrapf(errUnexpectedShape, "no data or %q key", domainKey)
	}
	var items []T
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, nil, errors.Wrap(err, "decoding envelope items")
	}

	if err := decodeMeta(fields, env); err != nil {
		return nil, nil, err
	}
	return items, env, nil
}

// decodeMeta maps the loosely-typed stats/filters blobs into typed structs;
// the backend is not strict about number vs string here, hence the weak
// decoding.
func decodeMeta(fields map[string]json.RawMessage, env *Envelope) error {
	if raw, ok := fields["stats"]; ok {
		var blob interface{}
		if err := json.Unmarshal(raw, &blob); err != nil {
			return errors.Wrap(err, "decoding stats")
		}
		env.Stats = new(ListStats)
		if err := weakDecode(blob, env.Stats); err != nil {
			return errors.Wrap(err, "mapping stats")
		}
	}
	if raw, ok := fields["filters"]; ok {
		var blob interface{}
		if err := json.Unmarshal(raw, &blob); err != nil {
			return errors.Wrap(err, "decoding filters")
		}
		env.Filters = new(ListFilters)
		if err := weakDecode(blob, env.Filters); err != nil {
			return errors.Wrap(err, "mapping filters")
		}
	}
	return nil
}

func weakDecode(in, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// decodeOne accepts a bare object or a `{success, data}` envelope around a
// single entity.
func decodeOne[T any](data []byte) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return zero, nil // 204-style response
	}

	var probe struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Success != nil && len(probe.Data) > 0 {
		var entity T
		if err := json.Unmarshal(probe.Data, &entity); err != nil {
			return zero, errors.Wrap(err, "decoding envelope entity")
		}
		return entity, nil
	}

	var entity T
	if err := json.Unmarshal(trimmed, &entity); err != nil {
		return zero, errors.Wrap(err, "decoding entity")
	}
	return entity, nil
}
