//go:build arm64

package floats

// FMADD is part of the arm64 baseline, no feature check needed.
func init() {
	archFMA = !noFMAEnv()
}
