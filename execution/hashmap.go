package execution

import explorer "github.com/muneeb706/ad-data-explorer"

// valueIndexMap maps values to small integer handles. Buckets chain entries
// under the canonical value hash and resolve them by full comparison, so
// hash collisions degrade lookups without breaking them.
type valueIndexMap struct {
	buckets map[uint64][]valueIndexEntry
}

type valueIndexEntry struct {
	key   explorer.Value
	index int
}

func newValueIndexMap() *valueIndexMap {
	return &valueIndexMap{
		buckets: make(map[uint64][]valueIndexEntry),
	}
}

func (m *valueIndexMap) Get(key explorer.Value) (int, bool) {
	list := m.buckets[key.Hash()]
	for i := range list {
		if explorer.AreEqual(list[i].key, key) {
			return list[i].index, true
		}
	}
	return 0, false
}

// GetOrAdd returns the handle for key, assigning the next free handle in
// first-seen order when the key is new.
func (m *valueIndexMap) GetOrAdd(key explorer.Value, next int) (index int, added bool) {
	hash := key.Hash()
	list := m.buckets[hash]
	for i := range list {
		if explorer.AreEqual(list[i].key, key) {
			return list[i].index, false
		}
	}

	m.buckets[hash] = append(list, valueIndexEntry{
		key:   key,
		index: next,
	})
	return next, true
}
