// Package taskdesk holds build-level metadata for the taskdesk module.
package taskdesk

// Version is the release version. Build overrides it with -ldflags.
var Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/taskdesk"
