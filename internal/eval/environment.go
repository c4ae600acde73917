// Copyright 2020-2021 Dolthub, Inc.
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

// Package eval implements spec.md §4.6: a lexically scoped evaluator over
// the ast.Expr/ast.Block family, carrying an environment that is a stack
// of frames (push/pop bracketing every block and every call).
package eval

import "github.com/dolthub/alexdb/internal/value"

// Environment is the frame stack the evaluator walks expressions against.
type Environment struct {
	frames []*value.Frame
}

// NewEnvironment returns an empty environment (a single call/statement's
// scope should always start by defining its globals into the first frame
// it pushes).
func NewEnvironment() *Environment {
	return &Environment{}
}

// PushFrame brackets a block or call.
func (e *Environment) PushFrame() {
	e.frames = append(e.frames, value.NewFrame())
}

// PopFrame releases the most recently pushed frame. Callers must pair
// every PushFrame with a PopFrame on every exit path, including errors
// (spec.md §5's resource-discipline requirement) — in this evaluator that
// is achieved with `defer env.PopFrame()` immediately after PushFrame.
func (e *Environment) PopFrame() {
	e.frames = e.frames[:len(e.frames)-1]
}

// Define binds name in the current top frame, shadowing any outer binding
// of the same name.
func (e *Environment) Define(name string, v value.Value) {
	if len(e.frames) == 0 {
		e.PushFrame()
	}
	e.frames[len(e.frames)-1].Push(name, v)
}

// Lookup scans frames top-of-stack to bottom, honoring the shadowing rule
// within each frame (Frame.Get already returns the most recent binding).
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].Get(name); ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Flatten collapses every frame currently on the stack into a single new
// frame, preserving the last binding per name (later frames' bindings
// shadow earlier ones), then deep-clones it. This is exactly what
// FunExpr uses to snapshot the defining environment into a Closure, so a
// later `=` in an outer frame cannot retroactively change what the
// closure sees (spec.md §4.6, the closure-purity invariant of §8).
func (e *Environment) Flatten() *value.Frame {
	flat := value.NewFrame()
	for _, f := range e.frames {
		f.Each(func(name string, v value.Value) {
			flat.Push(name, v)
		})
	}
	return flat.Clone()
}

// swapFrames installs a fresh frame stack (used for a closure call, which
// evaluates its body against the closure's captured frame plus a param
// frame, not the caller's lexical frames) and returns a function that
// restores the previous stack.
func (e *Environment) swapFrames(frames []*value.Frame) func() {
	saved := e.frames
	e.frames = frames
	return func() { e.frames = saved }
}
