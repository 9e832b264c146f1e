package avi

import "bytes"

// Test reports whether data starts like a RIFF AVI file with its header list.
// https://www.garykessler.net/library/file_sigs.html
func Test(data []byte) bool {
	if len(data) < 16 {
		return false
	}

	return bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("AVI ")) &&
		bytes.Equal(data[12:16], []byte("LIST"))
}
