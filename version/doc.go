// Package version exposes the engine's build identity.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/lyteflow/lyteflow/version.Version=1.0.0"
//
// When the linker flags are absent, the VCS stamp embedded by the Go
// toolchain fills in what it can.
package version
