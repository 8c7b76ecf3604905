package export

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtiforge/qtiforge/internal/author"
	"github.com/qtiforge/qtiforge/internal/qti"
)

func buildManifest(t *testing.T) (*qti.Manifest, *qti.AssessmentItem) {
	t.Helper()
	reg := qti.NewIDRegistry()

	d := author.NewChoiceDraft()
	d.Title = "Sample"
	d.Prompt = "Pick one."
	d.Choices = []string{"a", "b"}
	d.Correct = []int{0}
	d.Points = 1
	item, err := d.BuildItem(reg)
	require.NoError(t, err)

	m := qti.NewManifest(reg, "Sample Package")
	m.Add(item)
	return m, item
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = buf.Bytes()
	}
	return out
}

func TestBuildPackage(t *testing.T) {
	m, item := buildManifest(t)

	data, err := BuildPackage(m)
	require.NoError(t, err)

	files := readZip(t, data)
	require.Contains(t, files, "imsmanifest.xml")
	require.Contains(t, files, item.Href())
	assert.Len(t, files, 2)

	assert.Contains(t, string(files["imsmanifest.xml"]), `href="`+item.Href()+`"`)
	assert.Contains(t, string(files[item.Href()]), "<assessmentItem")
}

func TestWritePackageFile(t *testing.T) {
	m, _ := buildManifest(t)
	dst := filepath.Join(t.TempDir(), "pkg.zip")

	require.NoError(t, WritePackageFile(m, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	files := readZip(t, data)
	assert.Contains(t, files, "imsmanifest.xml")
}

func TestFailedExportLeavesDestinationIntact(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "pkg.zip")
	require.NoError(t, os.WriteFile(dst, []byte("previous good export"), 0o644))

	// An interaction with no response declaration fails emission, which must
	// abort the export before the destination is touched.
	reg := qti.NewIDRegistry()
	item := qti.NewAssessmentItem(reg, "broken")
	body := qti.NewItemBody(reg)
	body.Append(qti.NewChoiceInteraction(reg))
	item.SetBody(body)
	m := qti.NewManifest(reg, "Broken")
	m.Add(item)

	require.Error(t, WritePackageFile(m, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "previous good export", string(data))
}
