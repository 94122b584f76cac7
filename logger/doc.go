// Package logger wraps zerolog with a small structured-logging surface
// shared by the whole module. Flow passes log through it when the owning
// system is verbose; element wrappers use it for per-element timing.
package logger
