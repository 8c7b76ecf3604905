// Package export turns an authored manifest into an IMS content package: a
// zip archive holding imsmanifest.xml and every reachable resource file.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/qtiforge/qtiforge/internal/qti"
)

// BuildPackage serializes the manifest and all of its resources and returns
// the finished zip archive. The package is staged in a throwaway directory so
// a serialization failure never leaves a half-written archive behind.
func BuildPackage(m *qti.Manifest) ([]byte, error) {
	stage, err := os.MkdirTemp("", "qtiforge-pkg-*")
	if err != nil {
		return nil, fmt.Errorf("stage package: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := m.Write(stage); err != nil {
		return nil, fmt.Errorf("write package contents: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := zipDir(buf, stage); err != nil {
		return nil, fmt.Errorf("archive package: %w", err)
	}
	log.Debug().
		Str("manifest", string(m.Identifier)).
		Int("bytes", buf.Len()).
		Msg("package built")
	return buf.Bytes(), nil
}

// WritePackageFile builds the package and writes it to path. The destination
// is replaced atomically: any existing file at path survives untouched unless
// the whole build succeeds.
func WritePackageFile(m *qti.Manifest, path string) error {
	data, err := BuildPackage(m)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".qtiforge-*.zip")
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace archive: %w", err)
	}
	return nil
}

// zipDir archives every regular file under dir at the archive root. Entries
// are sorted so identical packages produce byte-identical archives.
func zipDir(w io.Writer, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	zw := zip.NewWriter(w)
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		zf, err := zw.Create(name)
		if err != nil {
			f.Close()
			return err
		}
		if _, err := io.Copy(zf, f); err != nil {
			f.Close()
			return err
		}
		f.Close()
	}
	return zw.Close()
}
