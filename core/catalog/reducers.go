package catalog

// Pure state-transition functions for the after-success local patching every
// list page does. They take the current collection and an action result and
// return the next collection, so list behavior is testable without a network.

// RemoveByID returns a copy of items without the row matching id.
// A miss returns the input unchanged.
func RemoveByID[T any, PT RowPtr[T]](items []T, id string) ([]T, bool) {
	next := make([]T, 0, len(items))
	var removed bool
	for i := range items {
		if !removed && PT(&items[i]).RowMeta().ID == id {
			removed = true
			continue
		}
		next = append(next, items[i])
	}
	return next, removed
}

// PatchByID returns a copy of items with patch applied to the row matching id.
func PatchByID[T any, PT RowPtr[T]](items []T, id string, patch func(*T)) ([]T, bool) {
	next := make([]T, len(items))
	copy(next, items)
	for i := range next {
		if PT(&next[i]).RowMeta().ID == id {
			patch(&next[i])
			return next, true
		}
	}
	return next, false
}

// MetaByID returns a copy of the shared fields of the row matching id.
func MetaByID[T any, PT RowPtr[T]](items []T, id string) (Meta, bool) {
	for i := range items {
		if m := PT(&items[i]).RowMeta(); m.ID == id {
			return *m, true
		}
	}
	return Meta{}, false
}
