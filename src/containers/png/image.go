package png

import "bytes"

var (
	signature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	iend      = []byte{'I', 'E', 'N', 'D', 0xAE, 'B', 0x60, 0x82}
)

// Test reports whether data is a complete png file.
// https://www.garykessler.net/library/file_sigs.html
func Test(data []byte) bool {
	if len(data) < len(signature)+len(iend) {
		return false
	}

	return bytes.HasPrefix(data, signature) && bytes.HasSuffix(data, iend)
}
