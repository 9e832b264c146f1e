package jpeg

// Test reports whether data holds a jpeg from start of image to end of image.
// https://www.garykessler.net/library/file_sigs.html
func Test(data []byte) bool {
	if len(data) < 4 {
		return false
	}

	soi := data[0] == 0xFF && data[1] == 0xD8
	eoi := data[len(data)-2] == 0xFF && data[len(data)-1] == 0xD9
	return soi && eoi
}
