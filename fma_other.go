//go:build !amd64 && !arm64

package floats

func init() {
	archFMA = false
}
