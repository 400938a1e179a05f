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

// Package cache provides for caching facts looked up while executing a
// single query plan, and reusing them if a later stage of that same plan
// happens to probe the identical (subject, predicate, object) pattern.
package cache

import (
	"sync"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/term"
)

// Design notes/direction
// Semantics loose enough that the same interface could later back a
// longer-lived cross-query cache layered underneath a per-query one. The
// current implementation is aimed squarely at the per-query case and
// does nothing to cap the number of entries.

// FactCache lets a query plan remember facts (and fictions — patterns
// known not to match) it has already resolved against a facts.Store at a
// given snapshot epoch.
type FactCache interface {
	// Add remembers that triple exists as of epoch.
	Add(epoch uint64, triple facts.Triple)
	// AddFiction remembers that no triple matching (s,p,o) exists as of
	// epoch.
	AddFiction(epoch uint64, s, p, o term.ID)
	// Has reports whether (s,p,o) is known to exist as of epoch.
	Has(epoch uint64, s, p, o term.ID) bool
	// IsFiction reports whether (s,p,o) is known not to exist as of epoch.
	IsFiction(epoch uint64, s, p, o term.ID) bool
}

// New returns a new, empty FactCache, safe for concurrent use by the
// parallel join stages of a single query plan.
func New() FactCache {
	return &cache{
		facts:    make(map[spoKey]struct{}),
		fictions: make(map[spoKey]struct{}),
	}
}

// spoKey is the compound key used for both the facts and fictions maps;
// the snapshot epoch is folded in so a cache populated while executing one
// snapshot is never consulted for another.
type spoKey struct {
	epoch     uint64
	subject   term.ID
	predicate term.ID
	object    term.ID
}

type cache struct {
	lock     sync.RWMutex
	facts    map[spoKey]struct{}
	fictions map[spoKey]struct{}
}

func (c *cache) Add(epoch uint64, t facts.Triple) {
	k := spoKey{epoch, t.Subject, t.Predicate, t.Object}
	c.lock.Lock()
	c.facts[k] = struct{}{}
	c.lock.Unlock()
}

func (c *cache) AddFiction(epoch uint64, s, p, o term.ID) {
	k := spoKey{epoch, s, p, o}
	c.lock.Lock()
	c.fictions[k] = struct{}{}
	c.lock.Unlock()
}

func (c *cache) Has(epoch uint64, s, p, o term.ID) bool {
	k := spoKey{epoch, s, p, o}
	c.lock.RLock()
	defer c.lock.RUnlock()
	_, ok := c.facts[k]
	return ok
}

func (c *cache) IsFiction(epoch uint64, s, p, o term.ID) bool {
	k := spoKey{epoch, s, p, o}
	c.lock.RLock()
	defer c.lock.RUnlock()
	_, ok := c.fictions[k]
	return ok
}
