package thermcam

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"
)

// SaveSnapshot writes the composed frame as a timestamped JPEG in the
// configured folder and returns the file path.
func SaveSnapshot(img gocv.Mat, folder string) (string, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot folder: %w", err)
	}
	name := "pic_" + time.Now().Format("2006-01-02_15-04-05") + ".jpg"
	path := filepath.Join(folder, name)
	if ok := gocv.IMWrite(path, img); !ok {
		return "", fmt.Errorf("write snapshot %s failed", path)
	}
	return path, nil
}
