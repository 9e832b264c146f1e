package gif

import "bytes"

var (
	magic87a = []byte("GIF87a")
	magic89a = []byte("GIF89a")
)

// Test reports whether data is a complete gif file.
// https://www.garykessler.net/library/file_sigs.html
func Test(data []byte) bool {
	if len(data) < 8 {
		return false
	}

	if !bytes.HasPrefix(data, magic87a) && !bytes.HasPrefix(data, magic89a) {
		return false
	}

	// every gif ends with a block terminator followed by the trailer
	return data[len(data)-2] == 0x00 && data[len(data)-1] == ';'
}
