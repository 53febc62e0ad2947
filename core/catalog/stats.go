package catalog

// Stats are pure reductions over the full stored collection; they do not
// depend on the active filter.
type Stats struct {
	Total    int
	Active   int
	Featured int
	Free     int
	Paid     int
	Revenue  float64 // sum of prices of paid rows
}

func ComputeStats[T any, PT RowPtr[T]](items []T) Stats {
	var s Stats
	s.Total = len(items)
	for i := range items {
		m := PT(&items[i]).RowMeta()
		if m.IsActive {
			s.Active++
		}
		if m.IsFeatured {
			s.Featured++
		}
		if m.IsFree || m.Price == 0 {
			s.Free++
		} else {
			s.Paid++
			s.Revenue += m.Price
		}
	}
	return s
}
