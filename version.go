package custody

import "fmt"

// Release of the custody application. Maj changes when the state or the
// transaction format is no longer readable by the previous release, Min with
// every new message or query path, Fix with bugfix releases.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set when building release binaries, for example
//   go build -ldflags "-X github.com/iov-one/custody.GitCommit=$(git rev-parse --short HEAD)" ./cmd/custodyd
var GitCommit = ""

// Version returns the release number, followed by GitCommit when set. Both
// custodyd and custodycli print it.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
