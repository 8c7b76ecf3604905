// Package parser reads existing QTI content packages back into the tool so
// previously exported questions can be re-edited.
package parser

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Manifest is the parsed view of an imsmanifest.xml.
type Manifest struct {
	Identifier string
	Title      string
	Resources  []ManifestResource
}

type ManifestResource struct {
	Identifier string
	Href       string
	Type       string
	Files      []string
}

type imsManifest struct {
	XMLName    xml.Name      `xml:"manifest"`
	Identifier string        `xml:"identifier,attr"`
	Title      string        `xml:"metadata>lom>general>title>string"`
	Resources  []imsResource `xml:"resources>resource"`
}
type imsResource struct {
	Identifier string    `xml:"identifier,attr"`
	Href       string    `xml:"href,attr"`
	Type       string    `xml:"type,attr"`
	Files      []imsFile `xml:"file"`
}
type imsFile struct {
	Href string `xml:"href,attr"`
}

// UnzipToTemp extracts an uploaded package into a fresh temp directory and
// returns the base dir. Entries escaping the base dir are rejected. On any
// failure the temp directory is removed again.
func UnzipToTemp(r io.ReaderAt, size int64) (string, error) {
	tmp, err := os.MkdirTemp("", "qtiforge-import-*")
	if err != nil {
		return "", err
	}
	if err := unzipInto(tmp, r, size); err != nil {
		os.RemoveAll(tmp)
		return "", err
	}
	return tmp, nil
}

func unzipInto(tmp string, r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return err
	}
	for _, f := range zr.File {
		dst := filepath.Join(tmp, f.Name)
		if !strings.HasPrefix(dst, tmp+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes package root: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dst, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.Create(dst)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ParseManifest locates and parses the package manifest under base. It
// returns the manifest plus the hrefs of the item resources to parse next.
func ParseManifest(base string) (Manifest, []string, error) {
	var mfPath string
	for _, p := range []string{"imsmanifest.xml", "manifest.xml"} {
		if _, err := os.Stat(filepath.Join(base, p)); err == nil {
			mfPath = filepath.Join(base, p)
			break
		}
	}
	if mfPath == "" {
		return Manifest{}, nil, fmt.Errorf("imsmanifest.xml not found")
	}

	b, err := os.ReadFile(mfPath)
	if err != nil {
		return Manifest{}, nil, err
	}
	var mf imsManifest
	if err := xml.Unmarshal(b, &mf); err != nil {
		return Manifest{}, nil, err
	}

	out := Manifest{Identifier: mf.Identifier, Title: mf.Title}
	var items []string
	for _, r := range mf.Resources {
		res := ManifestResource{
			Identifier: r.Identifier,
			Href:       r.Href,
			Type:       r.Type,
		}
		for _, f := range r.Files {
			res.Files = append(res.Files, f.Href)
		}
		out.Resources = append(out.Resources, res)
		if strings.HasPrefix(r.Type, "imsqti_item") {
			items = append(items, r.Href)
		}
	}
	return out, items, nil
}
