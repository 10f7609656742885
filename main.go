// Command haste is the progressive bidirectional path tracer / VCM
// renderer's entry point. The subcommand tree itself lives in cmd/haste so
// it can be driven from tests without spawning a process.
package main

import (
	"os"

	"github.com/ciechowoj/haste-go/cmd/haste"
)

func main() {
	os.Exit(haste.Execute())
}
