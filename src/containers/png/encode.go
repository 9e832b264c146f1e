package png

import (
	"fmt"
	"os"

	nImage "image"
	nPng "image/png"
)

var encoder = nPng.Encoder{CompressionLevel: nPng.BestSpeed}

// Encode writes img to file, replacing whatever was there.
func Encode(file string, img nImage.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}

	err = encoder.Encode(f, img)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return fmt.Errorf("encode png failed: %w", err)
	}

	return nil
}
