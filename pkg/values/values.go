// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package values holds the named values bound from a command line.
//
// Keys are dot-segmented namespaces such as service.resource.group.name.
// Values are always strings; typed reads parse on the way out and fall
// back to a default instead of failing, unless the caller demands the
// value.
package values

import (
	"strings"

	"github.com/tidwall/btree"
)

// Reserved keys.
const (
	KeyCommand    = "x.command"
	KeyArgs       = "x.command.args"
	KeyError      = "error"
	KeyHelp       = "display.help"
	KeyHelpTopic  = "display.help.topic"
	KeyInvocation = "x.invocation.id"
	KeyQuiet      = "x.quiet"
	KeyVerbose    = "x.verbose"
	KeyDebug      = "x.debug"
)

// Reserved reports whether key is owned by the runtime: the active
// command, its error, the invocation id and anything under "display.".
// Reserved keys are set by the dispatcher and the app, never by defaults.
func Reserved(key string) bool {
	switch key {
	case KeyCommand, KeyArgs, KeyError, KeyInvocation:
		return true
	}
	return strings.HasPrefix(key, "display.")
}

// Pair is a single key/value write.
type Pair struct {
	Key   string
	Value string
}

// Store is an ordered mapping from dotted keys to string values.
// A Store belongs to one invocation and is not safe for concurrent use.
type Store struct {
	m *btree.Map[string, string]
}

// New returns an empty Store.
func New() *Store {
	return &Store{m: btree.NewMap[string, string](0)}
}

// FromPairs returns a Store holding pairs, later pairs winning.
func FromPairs(pairs ...Pair) *Store {
	s := New()
	for _, p := range pairs {
		s.Set(p.Key, p.Value)
	}
	return s
}

// Get returns the value for key.
func (s *Store) Get(key string) (string, bool) {
	return s.m.Get(key)
}

// GetOrDefault returns the value for key, or fallback when the key is
// unset or empty.
func (s *Store) GetOrDefault(key, fallback string) string {
	if v, ok := s.m.Get(key); ok && v != "" {
		return v
	}
	return fallback
}

// Set overwrites the value for key.
func (s *Store) Set(key, value string) {
	s.m.Set(key, value)
}

// Reset replaces any value for key with value. An empty value is a
// value; use Delete to clear the key.
func (s *Store) Reset(key, value string) {
	s.m.Set(key, value)
}

// Add appends value to the existing value for key, joined by sep.
func (s *Store) Add(key, value, sep string) {
	if old, ok := s.m.Get(key); ok && old != "" {
		if value == "" {
			return
		}
		s.m.Set(key, old+sep+value)
		return
	}
	s.m.Set(key, value)
}

// Delete removes key.
func (s *Store) Delete(key string) {
	s.m.Delete(key)
}

// Contains reports whether key is set.
func (s *Store) Contains(key string) bool {
	_, ok := s.m.Get(key)
	return ok
}

// Len returns the number of keys set.
func (s *Store) Len() int {
	return s.m.Len()
}

// Names returns every key in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, s.m.Len())
	s.m.Scan(func(key, _ string) bool {
		names = append(names, key)
		return true
	})
	return names
}

// NamesWithPrefix returns the sorted keys that start with prefix.
func (s *Store) NamesWithPrefix(prefix string) []string {
	var names []string
	s.m.Ascend(prefix, func(key, _ string) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}
		names = append(names, key)
		return true
	})
	return names
}

// Pairs returns every key/value in key order.
func (s *Store) Pairs() []Pair {
	pairs := make([]Pair, 0, s.m.Len())
	s.m.Scan(func(key, value string) bool {
		pairs = append(pairs, Pair{Key: key, Value: value})
		return true
	})
	return pairs
}

// Map returns a copy of the store as a plain map.
func (s *Store) Map() map[string]string {
	out := make(map[string]string, s.m.Len())
	s.m.Scan(func(key, value string) bool {
		out[key] = value
		return true
	})
	return out
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	c := New()
	s.m.Scan(func(key, value string) bool {
		c.m.Set(key, value)
		return true
	})
	return c
}

// Merge copies every value from other. Existing keys are kept unless
// overwrite is set.
func (s *Store) Merge(other *Store, overwrite bool) {
	other.m.Scan(func(key, value string) bool {
		if overwrite || !s.Contains(key) {
			s.m.Set(key, value)
		}
		return true
	})
}

// Apply performs writes in order.
func (s *Store) Apply(writes ...Pair) {
	for _, w := range writes {
		s.Reset(w.Key, w.Value)
	}
}

// Command returns the active command name.
func (s *Store) Command() string {
	v, _ := s.m.Get(KeyCommand)
	return v
}

// SetCommand records the active command name.
func (s *Store) SetCommand(name string) {
	s.Reset(KeyCommand, name)
}

// Err returns the recorded error message, if any.
func (s *Store) Err() string {
	v, _ := s.m.Get(KeyError)
	return v
}

// SetErr records err under the error key. A nil err clears it.
func (s *Store) SetErr(err error) {
	if err == nil {
		s.m.Delete(KeyError)
		return
	}
	s.m.Set(KeyError, err.Error())
}

// HelpRequested reports whether help display was requested.
func (s *Store) HelpRequested() bool {
	return s.Bool(KeyHelp, false)
}
