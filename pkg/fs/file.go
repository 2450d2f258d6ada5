package fs

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to a file named by filename.  The file is replaced
// atomically: readers see either the old content or the new.  If the file
// does not exist, WriteFile creates it with permissions perm.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmppath := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmppath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmppath)
		return err
	}
	if err := os.Chmod(tmppath, perm); err != nil {
		os.Remove(tmppath)
		return err
	}
	return os.Rename(tmppath, filename)
}

// ReadFileIfExists returns the content of filename or nil if the file does
// not exist.
func ReadFileIfExists(filename string) ([]byte, error) {
	b, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return b, err
}
