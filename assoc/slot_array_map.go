package assoc

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// DefaultCapacity is the number of slots a new SlotArrayMap starts with.
const DefaultCapacity = 16

// ErrKeyNotFound is returned by Get when no occupied slot holds the key.
var ErrKeyNotFound = errors.New("key not found")

// SlotArrayMap maps unique keys to values using a growable array of slots.
type SlotArrayMap[K comparable, V any] struct {
	slots     []slot[K, V]
	liveCount int
	equal     EqualFunc[K]
}

// New returns an empty map with DefaultCapacity slots and DefaultEqual key comparison.
func New[K comparable, V any]() *SlotArrayMap[K, V] {
	return NewSlotArrayMap[K, V](DefaultCapacity, nil)
}

// NewSlotArrayMap returns an empty map with the given initial capacity and key equality.
// A non-positive capacity falls back to DefaultCapacity and a nil equal to DefaultEqual.
func NewSlotArrayMap[K comparable, V any](capacity int, equal EqualFunc[K]) *SlotArrayMap[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if equal == nil {
		equal = DefaultEqual[K]
	}
	return &SlotArrayMap[K, V]{
		slots: make([]slot[K, V], capacity),
		equal: equal,
	}
}

// Set associates value with key.
// An existing entry is overwritten in place; otherwise the pair takes the first
// empty slot, growing the array when there is none.
func (m *SlotArrayMap[K, V]) Set(key K, value V) {
	if i, ok := m.find(key); ok {
		m.slots[i].value = value
		return
	}

	i, ok := m.firstEmpty()
	if !ok {
		i = len(m.slots)
		m.grow()
	}
	m.slots[i] = occupiedSlot(key, value)
	m.liveCount++
}

// Get returns the value associated with key.
// The error wraps ErrKeyNotFound when the key is absent.
func (m *SlotArrayMap[K, V]) Get(key K) (V, error) {
	i, ok := m.find(key)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return m.slots[i].value, nil
}

// HasKey reports whether Get would succeed for key.
func (m *SlotArrayMap[K, V]) HasKey(key K) bool {
	_, ok := m.find(key)
	return ok
}

// Remove deletes the entry for key. Removing an absent key does nothing.
func (m *SlotArrayMap[K, V]) Remove(key K) {
	i, ok := m.find(key)
	if !ok {
		return
	}
	m.slots[i] = slot[K, V]{}
	m.liveCount--
}

// Size returns the number of entries.
func (m *SlotArrayMap[K, V]) Size() int {
	return m.liveCount
}

// Capacity returns the number of slots, occupied or not.
func (m *SlotArrayMap[K, V]) Capacity() int {
	return len(m.slots)
}

// Clone returns an independent copy with the same entries at the same slot positions.
// Keys and values are copied by assignment.
func (m *SlotArrayMap[K, V]) Clone() *SlotArrayMap[K, V] {
	slots := make([]slot[K, V], len(m.slots))
	copy(slots, m.slots)
	return &SlotArrayMap[K, V]{
		slots:     slots,
		liveCount: m.liveCount,
		equal:     m.equal,
	}
}

// All yields the entries in ascending slot order.
func (m *SlotArrayMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, s := range m.slots {
			if !s.occupied {
				continue
			}
			if !yield(s.key, s.value) {
				return
			}
		}
	}
}

// Keys returns the keys in ascending slot order.
func (m *SlotArrayMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.liveCount)
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// String renders the entries as "{ k0: v0, k1: v1 }", or "{}" when empty.
func (m *SlotArrayMap[K, V]) String() string {
	if m.liveCount == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	n := 0
	for k, v := range m.All() {
		if n > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, " %v: %v", k, v)
		n++
	}
	sb.WriteString(" }")
	return sb.String()
}

// find returns the index of the first occupied slot whose key equals key.
func (m *SlotArrayMap[K, V]) find(key K) (int, bool) {
	seen := 0
	for i := 0; i < len(m.slots) && seen < m.liveCount; i++ {
		s := &m.slots[i]
		if !s.occupied {
			continue
		}
		if keysEqual(m.equal, s.key, key) {
			return i, true
		}
		seen++
	}
	return -1, false
}

func (m *SlotArrayMap[K, V]) firstEmpty() (int, bool) {
	if m.liveCount == len(m.slots) {
		return -1, false
	}
	for i := range m.slots {
		if !m.slots[i].occupied {
			return i, true
		}
	}
	// liveCount < len(slots) guarantees an empty slot.
	panic(fmt.Errorf("slot array map: live count %d but no empty slot in %d", m.liveCount, len(m.slots)))
}

// grow doubles the capacity, keeping every existing slot at its index.
func (m *SlotArrayMap[K, V]) grow() {
	grown := make([]slot[K, V], 2*len(m.slots))
	copy(grown, m.slots)
	m.slots = grown
}
