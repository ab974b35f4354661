package cache

import "sync"

var _ Cache = (*TestCache)(nil)

type TestCache struct {
	cache map[interface{}]interface{}
	mutex sync.Mutex
}

func NewTestCache() *TestCache {
	return &TestCache{
		cache: make(map[interface{}]interface{}),
	}
}

func (tc *TestCache) Get(key interface{}) (interface{}, bool) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	val, ok := tc.cache[key]
	return val, ok
}

func (tc *TestCache) Set(key, value interface{}, _ int64) bool {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tc.cache[key] = value
	return true
}

func (tc *TestCache) Del(key interface{}) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	delete(tc.cache, key)
}

func (tc *TestCache) Clear() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tc.cache = make(map[interface{}]interface{})
}
