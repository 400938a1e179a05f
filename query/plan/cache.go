// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plan

import (
	"sync"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/query/ir"
)

// Cache memoizes compiled Plans by Fingerprint, so a query shape seen
// before (even with different bound constants) skips planning entirely.
type Cache struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{plans: make(map[string]*Plan)}
}

// Get returns the cached Plan for q if its Fingerprint has been seen
// before, compiling and caching it otherwise.
func (c *Cache) Get(q *ir.Query, fs *facts.Store) (*Plan, error) {
	fp := Fingerprint(q)

	c.mu.RLock()
	p, ok := c.plans[fp]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := New(q, fs)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.plans[fp] = p
	c.mu.Unlock()
	return p, nil
}
