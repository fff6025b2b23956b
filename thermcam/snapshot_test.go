package thermcam

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestSaveSnapshot(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 255, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer img.Close()

	folder := filepath.Join(t.TempDir(), "snaps")
	path, err := SaveSnapshot(img, folder)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filepath.Base(path), "pic_"))
	require.True(t, strings.HasSuffix(path, ".jpg"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
