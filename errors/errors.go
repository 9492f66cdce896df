// Copyright 2024 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines the typed diagnostics the resolver core raises.
// Errors are surfaced, never caught, by the stub and binding passes;
// AnalyzeCompilationUnit returns the accumulated List and callers must not
// use the graph on a non-nil result.
package errors

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"smlang.org/go/token"
)

// Error is the common interface every diagnostic kind implements.
type Error interface {
	error
	Position() token.Position

	// InputPositions reports every position that contributed to the
	// error, including Position() itself.
	InputPositions() []token.Position
}

// List accumulates every Error a single pass produced. Unlike a plain
// []error, List implements Error itself so a caller can treat "all the
// errors from this analysis" as one Error value.
type List []Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Position reports the position of the first error in the list.
func (l List) Position() token.Position {
	if len(l) == 0 {
		return token.Position{}
	}
	return l[0].Position()
}

// InputPositions reports the input positions of the first error in the
// list.
func (l List) InputPositions() []token.Position {
	if len(l) == 0 {
		return nil
	}
	return l[0].InputPositions()
}

// Append adds err to the list and returns the (possibly newly allocated)
// result, mirroring cue/errors.Append's "a, b Error -> Error" shape.
func Append(l List, err Error) List {
	if err == nil {
		return l
	}
	if sub, ok := err.(List); ok {
		return append(l, sub...)
	}
	return append(l, err)
}

// Sort orders the list by position, for reproducible diagnostics output.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		pi, pj := l[i].Position(), l[j].Position()
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
}

// Print writes every error in err (a single Error or a List) to w, one per
// line, in "position: message" form.
func Print(w io.Writer, err Error) {
	if err == nil {
		return
	}
	if l, ok := err.(List); ok {
		for _, e := range l {
			fmt.Fprintf(w, "%s: %s\n", e.Position(), e.Error())
		}
		return
	}
	fmt.Fprintf(w, "%s: %s\n", err.Position(), err.Error())
}

// Details renders err the way Print does and returns the result as a
// string, for callers that want text rather than a Writer.
func Details(err Error) string {
	var b strings.Builder
	Print(&b, err)
	return b.String()
}

// Sanitize sorts l by position and removes duplicate errors reported at
// the same position, on a best-effort basis. A list with a single
// remaining error collapses to that error; a non-List is returned as is.
func Sanitize(err Error) Error {
	l, ok := err.(List)
	if !ok || len(l) == 0 {
		return err
	}
	cp := make(List, len(l))
	copy(cp, l)
	cp.Sort()

	deduped := cp[:1]
	for _, e := range cp[1:] {
		if e.Position() == deduped[len(deduped)-1].Position() {
			continue
		}
		deduped = append(deduped, e)
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	return deduped
}

type baseError struct {
	pos token.Position
	msg string
}

func (e *baseError) Error() string            { return e.msg }
func (e *baseError) Position() token.Position { return e.pos }

// InputPositions reports the input positions that contributed to e.
// baseError only ever carries the one position it was constructed with.
func (e *baseError) InputPositions() []token.Position {
	return []token.Position{e.pos}
}

// newf builds an unexported baseError; kind-specific constructors below
// wrap it so the kind survives as a named Go type (useful for errors.As in
// callers, and for table-driven tests asserting on the exact kind raised).
func newf(pos token.Position, format string, args ...interface{}) *baseError {
	return &baseError{pos: pos, msg: fmt.Sprintf(format, args...)}
}
