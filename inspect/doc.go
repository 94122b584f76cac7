// Package inspect serves a read-only JSON view of a pipe system's
// structure: its elements, data edges and requirement edges. The intended
// consumer is an external graph renderer; no rendering happens here and
// nothing exposed here can mutate the graph.
package inspect
