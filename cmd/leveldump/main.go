// Command leveldump parses level/point debug dumps and plots them.
package main

import (
	"os"

	"github.com/banshee-data/leveldump/internal/fsutil"
)

func main() {
	if err := newRootCmd(fsutil.OSFileSystem{}).Execute(); err != nil {
		os.Exit(1)
	}
}
