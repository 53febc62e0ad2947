package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/careerpath/frontend/core/catalog"
)

// Resource is one entity's endpoint set:
//
//	GET    /api/<name>               public listing (server-side filters)
//	GET    /api/<name>/:id           public detail (auth optional)
//	GET    /api/<name>/admin         all records regardless of status
//	POST   /api/<name>/admin         create
//	GET    /api/<name>/admin/:id     load for editing
//	PUT    /api/<name>/admin/:id     full or partial update
//	DELETE /api/<name>/admin/:id     delete
//	POST   /api/<name>/upload/<kind> multipart upload
type Resource[T any] struct {
	c    *Client
	name string // path segment, eg "courses"
	key  string // envelope domain key, eg "materials"; "" when only `data` is used
}

func NewResource[T any](c *Client, name, domainKey string) Resource[T] {
	return Resource[T]{c: c, name: name, key: domainKey}
}

func (r Resource[T]) path(parts ...string) string {
	p := "/api/" + r.name
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// List fetches the public collection; q carries the server-understood params
// (search, category, examType, type, year, status, page, limit).
func (r Resource[T]) List(ctx context.Context, q url.Values) ([]T, *Envelope, error) {
	data, err := r.c.do(ctx, http.MethodGet, r.path(), q, nil, false)
	if err != nil {
		return nil, nil, err
	}
	return decodeList[T](data, r.key)
}

// AdminList fetches every record regardless of status; requires auth.
func (r Resource[T]) AdminList(ctx context.Context, q url.Values) ([]T, *Envelope, error) {
	data, err := r.c.do(ctx, http.MethodGet, r.path("admin"), q, nil, true)
	if err != nil {
		return nil, nil, err
	}
	return decodeList[T](data, r.key)
}

// Get fetches the public detail view. The auth header rides along only when a
// session exists; anonymous GETs are valid and return a locked/limited view.
func (r Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	data, err := r.c.do(ctx, http.MethodGet, r.path(id), nil, nil, true)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](data)
}

func (r Resource[T]) AdminGet(ctx context.Context, id string) (T, error) {
	var zero T
	data, err := r.c.do(ctx, http.MethodGet, r.path("admin", id), nil, nil, true)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](data)
}

func (r Resource[T]) Create(ctx context.Context, payload interface{}) (T, error) {
	var zero T
	data, err := r.c.do(ctx, http.MethodPost, r.path("admin"), nil, payload, true)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](data)
}

// Update covers both the full edit-form PUT and the quick-toggle PUT with a
// partial payload (eg map[string]interface{}{"isActive": true}).
func (r Resource[T]) Update(ctx context.Context, id string, payload interface{}) (T, error) {
	var zero T
	data, err := r.c.do(ctx, http.MethodPut, r.path("admin", id), nil, payload, true)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](data)
}

func (r Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.c.do(ctx, http.MethodDelete, r.path("admin", id), nil, nil, true)
	return err
}

// Upload runs the independent file-upload sub-flow. It does not persist the
// parent entity; the caller merges the result into form state.
func (r Resource[T]) Upload(ctx context.Context, kind, filename string, file io.Reader) (catalog.Upload, error) {
	var up catalog.Upload

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return up, errors.Wrap(err, "creating multipart field")
	}
	if _, err = io.Copy(part, file); err != nil {
		return up, errors.Wrap(err, "copying file")
	}
	if err = mw.Close(); err != nil {
		return up, errors.Wrap(err, "closing multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.c.baseURL+r.path("upload", kind), &body)
	if err != nil {
		return up, errors.Wrap(err, "building upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.c.setHeaders(req, true)

	data, err := r.c.send(req)
	if err != nil {
		return up, err
	}
	return decodeUpload(data)
}

// decodeUpload tolerates the upload endpoint's shape drift: `url` vs
// `fileUrl`, `size` vs `fileSize`, enveloped or not.
func decodeUpload(data []byte) (catalog.Upload, error) {
	var up catalog.Upload
	var blob map[string]interface{}
	if err := json.Unmarshal(data, &blob); err != nil {
		return up, errors.Wrap(err, "decoding upload response")
	}
	if nested, ok := blob["data"].(map[string]interface{}); ok {
		blob = nested
	}
	if v, ok := blob["fileUrl"]; ok {
		blob["url"] = v
	}
	if v, ok := blob["fileSize"]; ok {
		blob["size"] = v
	}
	if err := weakDecode(blob, &up); err != nil {
		return up, errors.Wrap(err, "mapping upload response")
	}
	if up.URL == "" {
		return up, errors.Wrap(errUnexpectedShape, "upload response has no url")
	}
	return up, nil
}
