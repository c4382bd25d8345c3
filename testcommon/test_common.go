package testcommon

import (
	"os"
	"path/filepath"
	"testing"
)

func ReadTestFile(t *testing.T, path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("error reading test file : %v", err)
		return nil
	}
	return data
}

// WriteTempFile writes data to a file in a per-test temporary directory.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Errorf("error writing temp file : %v", err)
	}
	return path
}
