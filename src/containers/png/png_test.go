package png

import (
	"os"
	"path/filepath"
	"testing"

	nImage "image"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, Encode(file, nImage.NewNRGBA(nImage.Rect(0, 0, 3, 2))))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, Test(data))
	assert.False(t, Test(data[:len(data)-1]))
}
