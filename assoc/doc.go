// Package assoc provides SlotArrayMap, an associative container backed by a
// growable array of slots instead of a hash table.
//
// Lookups are linear scans in ascending slot order. Insertion reuses the first
// freed slot or, when every slot is occupied, doubles the capacity and appends.
// Existing entries never move.
//
// The nil value of K is an ordinary key. When K is an interface type only the
// nil interface counts as that key: typed nils such as (*T)(nil) are distinct
// keys, compared by dynamic type. Keys whose dynamic type is not comparable,
// such as slices stored in an any key, panic when compared, as with Go maps.
//
// A SlotArrayMap is not safe for concurrent use.
//
// Example:
//
//	m := assoc.New[string, string]()
//	m.Set("a", "apple")
//	v, err := m.Get("a") // "apple", nil
//	_, err = m.Get("b")  // errors.Is(err, assoc.ErrKeyNotFound)
//	fmt.Println(m)       // { a: apple }
package assoc
