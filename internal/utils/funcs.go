package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
)

// rename is replaced in tests to simulate moves across filesystems.
var rename = os.Rename

const (
	errNotADirectoryFmt = "%s exists but is not a directory"
	errMoveDirFmt       = "cannot move %s: is a directory"
)

func IsIn(s string, arr []string) bool {
	for _, x := range arr {
		if s == x {
			return true
		}
	}
	return false
}

// DirExists reports whether path exists and is a directory. A path that
// exists as anything else is an error, since it can neither be reused nor
// created.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf(errNotADirectoryFmt, path)
	}
	return true, nil
}

// MoveFile moves the regular file src to dst. A rename is attempted first;
// when src and dst live on different filesystems the file is copied and the
// source removed.
func MoveFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf(errMoveDirFmt, src)
	}

	err = rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		// don't leave a truncated copy behind
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "could not copy %s to %s", src, filepath.Dir(dst))
	}
	return out.Close()
}
