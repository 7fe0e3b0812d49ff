package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/disk"
)

// NearestExistingDir walks up from path until it finds a directory that
// exists. It is used to find the filesystem a not yet created path will
// end up on.
func NearestExistingDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			return abs, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return abs, nil
		}
		abs = parent
	}
}

// DiskUsage returns usage statistics for the filesystem path is, or would
// be, located on.
func DiskUsage(path string) (*disk.UsageStat, error) {
	dir, err := NearestExistingDir(path)
	if err != nil {
		return nil, err
	}
	return disk.Usage(dir)
}

// HumanBytes formats a byte count using binary units.
func HumanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
