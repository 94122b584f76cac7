// Package pipe provides the pipe-system engine: a directed acyclic graph of
// data-transformation elements with one or more inlets and outlets.
//
// A graph is assembled through a Builder, which owns an arena of elements
// addressed by opaque handles. Data edges connect an element to its
// predecessors; requirement edges additionally bind an exported attribute of
// one element to a transform argument of another, independent of the data
// path. Build validates the structure, combines both edge kinds, and derives
// a deterministic topological execution order.
//
// A System drives one "flow" pass over the frozen graph: each raw input is
// bound to its inlet, every reachable element runs exactly once in scheduled
// order, and the pass yields one result per outlet. The graph itself is
// immutable after Build; all per-pass state lives in the pass, so repeated
// and concurrent Flow calls never interfere.
package pipe
