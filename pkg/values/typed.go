// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package values

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DemandError is returned when a value a command needs is not set or
// cannot be parsed.
type DemandError struct {
	Key     string
	Display string // human name, e.g. "subscription"
	Example string // e.g. "--subscription SUBSCRIPTION"
	Action  string // e.g. "Creating AI resource"
	Command string // e.g. "service resource create"
	Value   string // the malformed value, if any
	Err     error
}

func (e *DemandError) Error() string {
	name := e.Display
	if name == "" {
		name = e.Key
	}
	var b strings.Builder
	if e.Err != nil {
		fmt.Fprintf(&b, "ERROR: invalid %s %q: %v", name, e.Value, e.Err)
	} else {
		fmt.Fprintf(&b, "ERROR: Missing %s.", name)
	}
	if e.Action != "" {
		fmt.Fprintf(&b, "\n\n  WHILE: %s", e.Action)
	}
	if e.Example != "" {
		if e.Command != "" {
			fmt.Fprintf(&b, "\n  TRY:   ai %s %s", e.Command, e.Example)
		} else {
			fmt.Fprintf(&b, "\n  TRY:   %s", e.Example)
		}
	}
	return b.String()
}

func (e *DemandError) Unwrap() error {
	return e.Err
}

// Bool returns the value for key parsed as a bool, or def when the key is
// unset or malformed.
func (s *Store) Bool(key string, def bool) bool {
	v, ok := s.m.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// Int returns the value for key parsed as an int, or def when the key is
// unset or malformed.
func (s *Store) Int(key string, def int) int {
	v, ok := s.m.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// DemandBool is Bool without the fallback.
func (s *Store) DemandBool(key string) (bool, error) {
	v, ok := s.m.Get(key)
	if !ok {
		return false, &DemandError{Key: key}
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, &DemandError{Key: key, Value: v, Err: err}
	}
	return b, nil
}

// DemandInt is Int without the fallback.
func (s *Store) DemandInt(key string) (int, error) {
	v, ok := s.m.Get(key)
	if !ok {
		return 0, &DemandError{Key: key}
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &DemandError{Key: key, Value: v, Err: err}
	}
	return n, nil
}

// Demand returns the non-empty value for key, or a DemandError that tells
// the user which option supplies it.
func (s *Store) Demand(key, display, example, action, command string) (string, error) {
	if v, ok := s.m.Get(key); ok && v != "" {
		return v, nil
	}
	return "", &DemandError{Key: key, Display: display, Example: example, Action: action, Command: command}
}

// MarshalYAML renders the store as a flat mapping in key order.
func (s *Store) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	s.m.Scan(func(key, value string) bool {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
		return true
	})
	return node, nil
}
