package memory

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// PreferredRowAlignment suggests a row alignment matching the widest vector
// unit of the running CPU.
func PreferredRowAlignment() int {
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasAVX512F {
			return 64
		}
		if cpu.X86.HasAVX2 {
			return 32
		}
	case "arm64":
		if cpu.ARM64.HasSVE {
			return 64
		}
	}
	return DefaultBaseAlignment
}
