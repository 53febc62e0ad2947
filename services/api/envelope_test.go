package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/frontend/core/catalog"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		domainKey string
		wantIDs   []string
		wantErr   bool
		check     func(t *testing.T, env *Envelope)
	}{
		{
			name:    "bare array",
			body:    `[{"_id":"a","title":"A"},{"_id":"b","title":"B"}]`,
			wantIDs: []string{"a", "b"},
			check: func(t *testing.T, env *Envelope) {
				assert.False(t, env.Wrapped)
				assert.True(t, env.Success)
			},
		},
		{
			name:    "envelope with data key",
			body:    `{"success":true,"data":[{"_id":"a"}]}`,
			wantIDs: []string{"a"},
			check: func(t *testing.T, env *Envelope) {
				assert.True(t, env.Wrapped)
			},
		},
		{
			name:      "envelope with domain key",
			body:      `{"success":true,"materials":[{"_id":"m1"},{"_id":"m2"}]}`,
			domainKey: "materials",
			wantIDs:   []string{"m1", "m2"},
		},
		{
			name:      "stats and filters, weakly typed",
			body:      `{"success":true,"data":[],"stats":{"total":"12","revenue":999.5},"filters":{"categories":["ssc","upsc"],"years":[2022,2023]}}`,
			domainKey: "",
			wantIDs:   []string{},
			check: func(t *testing.T, env *Envelope) {
				require.NotNil(t, env.Stats)
				assert.Equal(t, 12, env.Stats.Total)
				assert.Equal(t, 999.5, env.Stats.Revenue)
				require.NotNil(t, env.Filters)
				assert.Equal(t, []string{"ssc", "upsc"}, env.Filters.Categories)
				assert.Equal(t, []string{"2022", "2023"}, env.Filters.Years)
			},
		},
		{
			name:    "failure message carried",
			body:    `{"success":false,"message":"db down","data":[]}`,
			wantIDs: []string{},
			check: func(t *testing.T, env *Envelope) {
				assert.False(t, env.Success)
				assert.Equal(t, "db down", env.Message)
			},
		},
		{name: "missing items key", body: `{"success":true}`, domainKey: "orders", wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, env, err := decodeList[catalog.StudyMaterial]([]byte(tt.body), tt.domainKey)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			got := make([]string, 0, len(items))
			for _, it := range items {
				got = append(got, it.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
			if tt.check != nil {
				tt.check(t, env)
			}
		})
	}
}

// Both shapes must decode to the same items.
func TestDecodeList_shapesAgree(t *testing.T) {
	bare, _, err := decodeList[catalog.Course]([]byte(`[{"_id":"a","title":"T"}]`), "")
	require.NoError(t, err)
	wrapped, _, err := decodeList[catalog.Course]([]byte(`{"success":true,"data":[{"_id":"a","title":"T"}]}`), "")
	require.NoError(t, err)
	assert.Equal(t, bare, wrapped)
}

// The payments endpoint keys its rows under "orders" rather than "data".
func TestDecodeList_orders(t *testing.T) {
	body := `{"success":true,"orders":[
		{"_id":"o1","title":"Banking Basics","itemId":"c1","itemType":"course","amount":499,"status":"paid","paymentId":"pay_1"},
		{"_id":"o2","title":"SSC Prep","itemType":"testseries","amount":299,"status":"created"}
	]}`
	orders, env, err := decodeList[catalog.Order]([]byte(body), "orders")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "course", orders[0].ItemType)
	assert.Equal(t, 499.0, orders[0].Amount)
	assert.Equal(t, "paid", orders[0].Status)
	assert.Equal(t, "created", orders[1].Status)
	assert.True(t, env.Wrapped)
}

func TestDecodeOne(t *testing.T) {
	bare, err := decodeOne[catalog.Ebook]([]byte(`{"_id":"e1","title":"Book","access":"locked"}`))
	require.NoError(t, err)
	assert.Equal(t, "e1", bare.ID)
	assert.Equal(t, catalog.AccessLocked, bare.AccessLevel())

	wrapped, err := decodeOne[catalog.Ebook]([]byte(`{"success":true,"data":{"_id":"e1","title":"Book"}}`))
	require.NoError(t, err)
	assert.Equal(t, "e1", wrapped.ID)

	empty, err := decodeOne[catalog.Ebook](nil)
	require.NoError(t, err)
	assert.Empty(t, empty.ID)
}

func TestDecodeUpload(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantURL  string
		wantSize int64
		wantErr  bool
	}{
		{name: "url and size", body: `{"url":"https://cdn.test/f.pdf","size":2048}`, wantURL: "https://cdn.test/f.pdf", wantSize: 2048},
		{name: "fileUrl variant", body: `{"fileUrl":"https://cdn.test/f.pdf","fileSize":"2048"}`, wantURL: "https://cdn.test/f.pdf", wantSize: 2048},
		{name: "enveloped", body: `{"success":true,"data":{"url":"https://cdn.test/f.pdf"}}`, wantURL: "https://cdn.test/f.pdf"},
		{name: "no url", body: `{"success":true}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, err := decodeUpload([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, up.URL)
			assert.Equal(t, tt.wantSize, up.Size)
		})
	}
}
