// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

// Package pathfilter implements ordered glob include/exclude rules for
// selecting output filenames during bulk extraction. It is the CLI-facing
// counterpart of the container's TGI-only Entry model: the container
// exposes no filenames of its own, but the caller still wants to filter
// which synthesized output names get written.
package pathfilter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ixfkit/ixf"
)

// Action decides whether a rule includes or excludes a matched name.
type Action int

const (
	// ActionUnknown is the zero value. NewMatcher rejects it as a rule's
	// action; as MatcherOptions.DefaultAction it is replaced by ActionInclude.
	ActionUnknown Action = iota
	// ActionInclude keeps a name matched by the rule.
	ActionInclude
	// ActionExclude drops a name matched by the rule.
	ActionExclude
)

// Rule is one ordered glob pattern paired with the action to take when it matches.
type Rule struct {
	Action  Action
	Pattern string
}

// MatcherOptions configures a Matcher's case sensitivity and fallback action.
type MatcherOptions struct {
	// CaseInsensitive lowercases both pattern and candidate before matching.
	CaseInsensitive bool
	// DefaultAction is returned when no rule matches. Defaults to ActionInclude.
	DefaultAction Action
}

func (o *MatcherOptions) applyDefaults() {
	if o.DefaultAction == ActionUnknown {
		o.DefaultAction = ActionInclude
	}
}

// Matcher evaluates a name against an ordered rule set: the last matching
// rule wins, mirroring shell-style include/exclude filter chains.
type Matcher struct {
	rules []Rule
	opts  MatcherOptions
}

// NewMatcher validates rules and options and returns a ready Matcher.
func NewMatcher(rules []Rule, opts MatcherOptions) (*Matcher, error) {
	opts.applyDefaults()

	for _, r := range rules {
		if r.Action != ActionInclude && r.Action != ActionExclude {
			return nil, fmt.Errorf("%w: no action given for pattern %q", ixf.ErrInvalidFilterPattern, r.Pattern)
		}
		if _, err := filepath.Match(r.Pattern, ""); err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ixf.ErrInvalidFilterPattern, r.Pattern, err)
		}
	}

	return &Matcher{rules: rules, opts: opts}, nil
}

// Allow reports whether name should be kept, applying the last-match-wins rule chain.
func (m *Matcher) Allow(name string) bool {
	action := m.opts.DefaultAction
	candidate := name
	if m.opts.CaseInsensitive {
		candidate = strings.ToLower(candidate)
	}

	for _, r := range m.rules {
		pattern := r.Pattern
		if m.opts.CaseInsensitive {
			pattern = strings.ToLower(pattern)
		}

		if ok, _ := filepath.Match(pattern, candidate); ok {
			action = r.Action
		}
	}

	return action == ActionInclude
}
