// Package kernels provides the stock transformation elements used with the
// pipe engine: scaling, normalization, rotation variants, duplication,
// fan-in concatenation, categorical encoding and column filtering.
//
// Kernels are ordinary pipe.Elements; the engine knows nothing about them
// beyond the transform contract. Each kernel also registers a definition
// factory so systems can be rebuilt from YAML or JSON definitions.
package kernels
