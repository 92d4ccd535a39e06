// Package pkg holds small generic helpers shared across tdbql's packages:
// a typed map wrapper and the single-writer/many-reader locking pattern
// used by both Table and Engine.
package pkg

// Map is a typed alias over a Go map, giving it the handful of methods
// call sites reach for repeatedly (notably Keys, for Engine.Tables).
type Map[K comparable, V any] map[K]V

func (m Map[K, V]) Get(key K) V {
	return m[key]
}

func (m Map[K, V]) Set(key K, value V) {
	m[key] = value
}

func (m Map[K, V]) Has(key K) bool {
	_, ok := m[key]
	return ok
}

func (m Map[K, V]) Delete(key K) {
	delete(m, key)
}

func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
