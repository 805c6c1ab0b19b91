package model

// memo caches a value derived from the tree. It is valid while the tree
// generation it was computed at is current.
type memo[T any] struct {
	gen   uint64
	valid bool
	value T
}

func (m *memo[T]) get(gen uint64, compute func() (T, error)) (T, error) {
	if m.valid && m.gen == gen {
		return m.value, nil
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	m.gen, m.valid, m.value = gen, true, v
	return v, nil
}

func (m *memo[T]) reset() {
	var zero T
	m.valid, m.value = false, zero
}
