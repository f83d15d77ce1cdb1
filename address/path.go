/*
 * MIT License
 *
 * Copyright (c) 2022-2024  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package address provides the hierarchical Path used to name actors
// within a single ActorSystem (spec §3 "Path", §6 path syntax). Unlike the
// teacher's network-addressable Address (host/port, used for remoting),
// Path here is purely local: cross-host transport is a named Non-goal
// (spec §1), so there is no host/port/system-name triple to carry.
package address

import (
	"regexp"
	"strings"
)

// segmentPattern matches a single valid path segment: ASCII letters,
// digits, underscore, dot, and hyphen (spec §6).
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// ValidSegment reports whether name is a legal path segment. No segment
// name is reserved.
func ValidSegment(name string) bool {
	if name == "" || strings.Contains(name, "/") {
		return false
	}
	return segmentPattern.MatchString(name)
}

// Path is a slash-rooted, immutable chain of segments identifying an
// actor's position in the hierarchy. Two Paths with equal String() are
// interchangeable; Path itself carries no liveness information (§3: "a
// reference to a terminated actor still has a path").
type Path struct {
	segment string
	parent  *Path
	cached  string
}

// Root is the tree root "/".
var Root = &Path{segment: "", parent: nil, cached: "/"}

// Child returns a new Path appending segment under p. It does not validate
// segment; callers (actor_of) validate before calling Child.
func (p *Path) Child(segment string) *Path {
	if p == nil {
		p = Root
	}
	var cached string
	if p == Root {
		cached = "/" + segment
	} else {
		cached = p.cached + "/" + segment
	}
	return &Path{segment: segment, parent: p, cached: cached}
}

// Name returns the path's last segment, "" for Root.
func (p *Path) Name() string {
	if p == nil {
		return ""
	}
	return p.segment
}

// Parent returns the parent Path, or nil if p is Root or nil.
func (p *Path) Parent() *Path {
	if p == nil || p == Root {
		return nil
	}
	return p.parent
}

// String returns the canonical "/"-separated textual form.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	return p.cached
}

// Equals compares two Paths by their canonical string form.
func (p *Path) Equals(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.cached == other.cached
}

// Parse splits a "/"-separated absolute path string into its segments,
// validating each one. "." and ".." are not interpreted (spec §6).
func Parse(raw string) (*Path, bool) {
	if raw == "" || raw == "/" {
		return Root, true
	}
	if !strings.HasPrefix(raw, "/") {
		return nil, false
	}
	parts := strings.Split(strings.TrimPrefix(raw, "/"), "/")
	p := Root
	for _, seg := range parts {
		if !ValidSegment(seg) {
			return nil, false
		}
		p = p.Child(seg)
	}
	return p, true
}
