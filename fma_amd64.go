//go:build amd64

package floats

import "golang.org/x/sys/cpu"

func init() {
	archFMA = cpu.X86.HasFMA && !noFMAEnv()
}
