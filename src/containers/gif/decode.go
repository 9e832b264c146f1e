package gif

import (
	"bytes"
	"fmt"
	"os"

	nGif "image/gif"
)

const (
	blockExtension  = 0x21
	blockImage      = 0x2C
	blockTrailer    = 0x3B
	labelGraphicCtl = 0xF9

	flagColorTable  = 0x80
	flagTransparent = 0x01
	maskTableSize   = 0x07
)

// tableInfo is what the file said about a frame's colour table before it was
// padded: the number of entries and the transparent index, -1 for none.
type tableInfo struct {
	entries     int
	transparent int
}

func decodeFile(file string) (*nGif.GIF, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("open file failed: %w", err)
	}

	return decode(data)
}

// decode reads a gif whose frames may index past the end of their colour
// table. image/gif rejects such files outright, so every table is padded to
// 256 entries first and each frame's palette is cut back to its real length
// afterwards. Out of range pixels then reach the compositor, which skips the
// frame.
func decode(data []byte) (*nGif.GIF, error) {
	padded, tables := padColorTables(data)

	g, err := nGif.DecodeAll(bytes.NewReader(padded))
	if err != nil {
		return nil, fmt.Errorf("decode gif failed: %w", err)
	}

	for i, frame := range g.Image {
		if i >= len(tables) {
			break
		}

		n := tables[i].entries
		if tables[i].transparent >= n {
			n = tables[i].transparent + 1
		}
		if n > 0 && n < len(frame.Palette) {
			frame.Palette = frame.Palette[:n]
		}
	}

	return g, nil
}

// padColorTables rewrites every colour table in data to 256 entries. Blocks it
// cannot make sense of are copied through unchanged for image/gif to report.
func padColorTables(data []byte) ([]byte, []tableInfo) {
	if len(data) < 13 {
		return data, nil
	}

	out := bytes.Buffer{}
	out.Grow(len(data) + 2*3*256)

	var tables []tableInfo
	transparent := -1

	out.Write(data[:10])
	pos, global := writeTable(&out, data, 10, data[10])
	if pos < 0 {
		return data, nil
	}

	for pos < len(data) {
		switch data[pos] {
		case blockExtension:
			if pos+1 >= len(data) {
				out.Write(data[pos:])
				return out.Bytes(), tables
			}
			label := data[pos+1]
			if label == labelGraphicCtl && pos+6 < len(data) && data[pos+2] == 4 {
				transparent = -1
				if data[pos+3]&flagTransparent != 0 {
					transparent = int(data[pos+6])
				}
			}

			end := skipSubBlocks(data, pos+2)
			if end < 0 {
				out.Write(data[pos:])
				return out.Bytes(), tables
			}
			out.Write(data[pos:end])
			pos = end

		case blockImage:
			if pos+10 > len(data) {
				out.Write(data[pos:])
				return out.Bytes(), tables
			}

			out.Write(data[pos : pos+9])
			entries := global
			next, local := writeTable(&out, data, pos+9, data[pos+9])
			if next < 0 {
				return out.Bytes(), tables
			}
			if local > 0 {
				entries = local
			}

			// lzw minimum code size, then the image data sub blocks
			if next >= len(data) {
				return out.Bytes(), tables
			}
			end := skipSubBlocks(data, next+1)
			if end < 0 {
				out.Write(data[next:])
				return out.Bytes(), tables
			}
			out.Write(data[next:end])
			pos = end

			tables = append(tables, tableInfo{entries: entries, transparent: transparent})
			transparent = -1

		default:
			out.Write(data[pos:])
			return out.Bytes(), tables
		}
	}

	return out.Bytes(), tables
}

// writeTable writes the packed field at data[pos] and the colour table that
// follows it, widened to 256 entries. It returns the position after the table
// and the table's original entry count, 0 when there is none. A truncated
// table writes the rest of data and returns -1.
func writeTable(out *bytes.Buffer, data []byte, pos int, packed byte) (int, int) {
	if packed&flagColorTable == 0 {
		out.WriteByte(packed)
		// the screen descriptor has two more bytes after its packed field
		if pos == 10 {
			out.Write(data[pos+1 : pos+3])
			return pos + 3, 0
		}
		return pos + 1, 0
	}

	entries := 1 << ((packed & maskTableSize) + 1)
	rest := pos + 1
	if pos == 10 {
		rest = pos + 3
	}
	end := rest + 3*entries
	if end > len(data) {
		out.Write(data[pos:])
		return -1, 0
	}

	out.WriteByte(packed | maskTableSize)
	out.Write(data[pos+1 : end])
	out.Write(make([]byte, 3*(256-entries)))
	return end, entries
}

// skipSubBlocks returns the position after the zero length block that ends
// the sub block chain starting at pos, or -1 when data ends first.
func skipSubBlocks(data []byte, pos int) int {
	for pos < len(data) {
		n := int(data[pos])
		pos++
		if n == 0 {
			return pos
		}
		pos += n
	}
	return -1
}
