package store

import (
	"bytes"

	"github.com/iov-one/custody/errors"
)

// mergeIterator combines a snapshot of cached items with the iterator of
// the backing store. Cached values shadow the parent, deleted items hide
// the parent value with the same key.
type mergeIterator struct {
	cache []cached
	idx   int

	parent      Iterator
	parentDone  bool
	parentReady bool
	parentKey   []byte
	parentValue []byte

	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cache []cached, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		cache:     cache,
		parent:    parent,
		ascending: ascending,
	}
}

// Next returns the next key-value pair in iteration order.
func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}

		hasCache := m.idx < len(m.cache)
		switch {
		case !hasCache && m.parentDone:
			return nil, nil, errors.ErrIteratorDone
		case !hasCache:
			return m.takeParent()
		case m.parentDone:
			if key, value, ok := m.takeCache(); ok {
				return key, value, nil
			}
			continue
		}

		cmp := bytes.Compare(m.cache[m.idx].Key(), m.parentKey)
		if !m.ascending {
			cmp = -cmp
		}
		if cmp > 0 {
			return m.takeParent()
		}
		if cmp == 0 {
			// the cached value shadows the parent one
			m.parentReady = false
		}
		if key, value, ok := m.takeCache(); ok {
			return key, value, nil
		}
	}
}

func (m *mergeIterator) peekParent() error {
	if m.parentDone || m.parentReady {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.parentDone = true
	case err != nil:
		return errors.Wrap(err, "parent iterator")
	default:
		m.parentReady = true
		m.parentKey = key
		m.parentValue = value
	}
	return nil
}

func (m *mergeIterator) takeParent() ([]byte, []byte, error) {
	m.parentReady = false
	return m.parentKey, m.parentValue, nil
}

// takeCache consumes the current cached item. Deleted items are consumed
// too but reported as not ok.
func (m *mergeIterator) takeCache() ([]byte, []byte, bool) {
	item := m.cache[m.idx]
	m.idx++
	if s, ok := item.(setItem); ok {
		return s.key, s.value, true
	}
	return nil, nil, false
}

// Release releases the Iterator.
func (m *mergeIterator) Release() {
	m.cache = nil
	m.parent.Release()
}

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the next model from the slice.
func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}

// ReadAll consumes given iterator and returns all models in iteration
// order. Iterator is released.
func ReadAll(it Iterator) ([]Model, error) {
	defer it.Release()
	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, Pair(key, value))
	}
}
