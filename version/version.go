// Package version holds build identification injected by the linker, for
// example
//
//	go build -ldflags "-X github.com/spookyvision/color-mixer/version.GitHash=$(git rev-parse HEAD)"
package version

var (
	BuildTime = "unknown"
	GitHash   = "unknown"
)
