package parser

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func importTempDirs(t *testing.T) []string {
	t.Helper()
	dirs, err := filepath.Glob(filepath.Join(os.TempDir(), "qtiforge-import-*"))
	require.NoError(t, err)
	return dirs
}

func TestUnzipToTemp(t *testing.T) {
	r := buildZip(t, map[string]string{
		"imsmanifest.xml": "<manifest/>",
		"sub/item.xml":    "<assessmentItem/>",
	})
	base, err := UnzipToTemp(r, r.Size())
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(base) })

	b, err := os.ReadFile(filepath.Join(base, "sub", "item.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<assessmentItem/>", string(b))
}

func TestUnzipToTempCleansUpOnFailure(t *testing.T) {
	before := importTempDirs(t)

	bad := []byte("this is not a zip archive")
	_, err := UnzipToTemp(bytes.NewReader(bad), int64(len(bad)))
	require.Error(t, err)

	assert.Equal(t, before, importTempDirs(t), "failed extraction must not leave a temp directory behind")
}
