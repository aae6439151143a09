// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package syncmap provides a generic, concurrency-safe map guarded by a
// read-write mutex.
package syncmap

import "sync"

// SyncMap is a generic, concurrency-safe map.
//
// K represents the key type, which must be comparable.
// V represents the value type, which can be any type.
type SyncMap[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates and returns a new instance of SyncMap.
func New[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{
		data: make(map[K]V),
	}
}

// Set stores a key-value pair. An existing value for the key is replaced.
func (x *SyncMap[K, V]) Set(k K, v V) {
	x.mu.Lock()
	x.data[k] = v
	x.mu.Unlock()
}

// Get retrieves the value associated with the given key. The second return
// value indicates whether the key was found.
func (x *SyncMap[K, V]) Get(k K) (V, bool) {
	x.mu.RLock()
	val, ok := x.data[k]
	x.mu.RUnlock()
	return val, ok
}

// GetOrSet returns the existing value for the key when present. Otherwise it
// stores and returns the given value. The loaded result is true when the
// value was already present.
func (x *SyncMap[K, V]) GetOrSet(k K, v V) (actual V, loaded bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if existing, ok := x.data[k]; ok {
		return existing, true
	}
	x.data[k] = v
	return v, false
}

// Delete removes the key-value pair associated with the given key.
// When the key does not exist this operation has no effect.
func (x *SyncMap[K, V]) Delete(k K) {
	x.mu.Lock()
	delete(x.data, k)
	x.mu.Unlock()
}

// Len returns the number of key-value pairs currently stored.
func (x *SyncMap[K, V]) Len() int {
	x.mu.RLock()
	l := len(x.data)
	x.mu.RUnlock()
	return l
}

// Keys returns a snapshot of the keys currently stored. The order is not
// guaranteed.
func (x *SyncMap[K, V]) Keys() []K {
	x.mu.RLock()
	defer x.mu.RUnlock()
	keys := make([]K, 0, len(x.data))
	for k := range x.data {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a snapshot of the values currently stored. The order is not
// guaranteed.
func (x *SyncMap[K, V]) Values() []V {
	x.mu.RLock()
	defer x.mu.RUnlock()
	values := make([]V, 0, len(x.data))
	for _, v := range x.data {
		values = append(values, v)
	}
	return values
}

// Range iterates over all key-value pairs and executes the given function
// for each pair until the function returns false. The iteration order is not
// guaranteed.
func (x *SyncMap[K, V]) Range(f func(K, V) bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	for k, v := range x.data {
		if !f(k, v) {
			return
		}
	}
}

// Reset removes all key-value pairs.
func (x *SyncMap[K, V]) Reset() {
	x.mu.Lock()
	x.data = make(map[K]V)
	x.mu.Unlock()
}
