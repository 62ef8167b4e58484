package utils

import (
	"archive/zip"
	"crypto/sha1"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Checksum is the SHA-1 digest identifying a jar.
type Checksum [sha1.Size]byte

func (c Checksum) String() string {
	return fmt.Sprintf("%x", c[:])
}

// JarChecksum hashes the .class entries of the zip archive at path. Entries
// are visited in name order and each contributes its name followed by its
// content, so archives that differ only in entry order, directory entries or
// resources hash the same.
func JarChecksum(path string) (Checksum, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return Checksum{}, fmt.Errorf("open jar %s: %w", path, err)
	}
	defer archive.Close()

	return zipChecksum(&archive.Reader)
}

func zipChecksum(archive *zip.Reader) (Checksum, error) {
	classes := make([]*zip.File, 0, len(archive.File))
	for _, f := range archive.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".class") {
			classes = append(classes, f)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })

	digest := sha1.New()
	for _, f := range classes {
		io.WriteString(digest, f.Name)

		rc, err := f.Open()
		if err != nil {
			return Checksum{}, fmt.Errorf("open jar entry %s: %w", f.Name, err)
		}
		_, err = io.Copy(digest, rc)
		rc.Close()
		if err != nil {
			return Checksum{}, fmt.Errorf("read jar entry %s: %w", f.Name, err)
		}
	}

	var sum Checksum
	copy(sum[:], digest.Sum(nil))
	return sum, nil
}
