package assoc

// slot is one position of the backing array.
// The zero value is an empty slot, so a freshly grown array needs no initialisation.
type slot[K comparable, V any] struct {
	occupied bool
	key      K
	value    V
}

func occupiedSlot[K comparable, V any](key K, value V) slot[K, V] {
	return slot[K, V]{occupied: true, key: key, value: value}
}
