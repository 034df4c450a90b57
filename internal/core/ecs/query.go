package ecs

// Each2 visits entities present in both stores, walking the smaller one. The
// visit order is the dense order of whichever store is walked.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i, id := range sa.ids {
			if b, ok := sb.Get(id); ok {
				fn(id, sa.data[i], b)
			}
		}
		return
	}
	for i, id := range sb.ids {
		if a, ok := sa.Get(id); ok {
			fn(id, a, sb.data[i])
		}
	}
}

// Each3 is Each2 for three stores; it always walks the first one.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for i, id := range sa.ids {
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		c, ok := sc.Get(id)
		if !ok {
			continue
		}
		fn(id, sa.data[i], b, c)
	}
}
