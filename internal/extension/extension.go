// SPDX-License-Identifier: Unlicense OR MIT

// Package extension resolves optional native entry points and extension
// strings once per process.
package extension

import (
	"strings"
	"sync"
)

// Has reports whether name occurs in the space separated list as a whole
// token. A match must be bounded by a space or the end of the string on
// both sides, so that a name never matches a longer name it prefixes.
func Has(list, name string) bool {
	if name == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(list[start:], name)
		if i < 0 {
			return false
		}
		where := start + i
		term := where + len(name)
		if (where == 0 || list[where-1] == ' ') && (term == len(list) || list[term] == ' ') {
			return true
		}
		start = term
	}
}

// Probe caches an extension string and resolved entry points. The first
// resolution of each value wins; results, including missing entry
// points, are never refreshed.
type Probe struct {
	mu       sync.Mutex
	hasExts  bool
	exts     string
	procs    map[string]uintptr
	resolves int
}

// Extensions returns the cached extension string, calling load on first
// use.
func (p *Probe) Extensions(load func() string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasExts {
		p.exts = load()
		p.hasExts = true
		p.resolves++
	}
	return p.exts
}

// Supports reports whether the cached extension string contains name.
func (p *Probe) Supports(load func() string, name string) bool {
	return Has(p.Extensions(load), name)
}

// Proc returns the cached entry point for name, calling load on first use.
// A zero result means the entry point is unavailable.
func (p *Probe) Proc(name string, load func(name string) uintptr) uintptr {
	p.mu.Lock()
	defer p.mu.Unlock()
	if addr, ok := p.procs[name]; ok {
		return addr
	}
	if p.procs == nil {
		p.procs = make(map[string]uintptr)
	}
	addr := load(name)
	p.procs[name] = addr
	p.resolves++
	return addr
}

// Resolves returns the number of times a loader has been called.
func (p *Probe) Resolves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolves
}

// Reset forgets every cached value. It exists for tests; the process-wide
// probes of the backends are never reset.
func (p *Probe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hasExts = false
	p.exts = ""
	p.procs = nil
	p.resolves = 0
}
