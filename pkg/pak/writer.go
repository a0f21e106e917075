package pak

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
)

// File describes one regular file found under a source directory: its
// path relative to the root (host separators) and its size in bytes.
type File struct {
	Path string
	Size int64
}

// ScanDir walks root and returns every regular file beneath it, with
// paths relative to root. The walk order is lexical and becomes the
// archive's entry order.
func ScanDir(root string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		files = append(files, File{Path: relPath, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return files, nil
}

// Layout assigns content offsets to the scanned files, producing the
// archive's entry table. The first file's content starts after the
// header, the entry table, and the trailer record; each subsequent
// offset advances by the cumulative size of all preceding files.
func Layout(files []File) ([]Entry, error) {
	offset := int64(HeaderSize + (len(files)+1)*EntrySize)

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if offset > math.MaxUint32 {
			return nil, fmt.Errorf("content offset %d for %s exceeds 32 bits", offset, f.Path)
		}
		e := Entry{Path: f.Path, Offset: uint32(offset)}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		entries = append(entries, e)
		offset += f.Size
	}
	return entries, nil
}

// Pack archives every regular file under sourceDir into a new archive
// at archivePath, preserving relative paths. A pre-existing file at
// archivePath is removed first; a failure mid-pack leaves the partial
// file in place. Returns the number of files packed.
func Pack(sourceDir, archivePath string, opts ...PackOption) (int, error) {
	cfg := &packConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	files, err := ScanDir(sourceDir)
	if err != nil {
		return 0, err
	}
	entries, err := Layout(files)
	if err != nil {
		return 0, err
	}

	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("remove old archive: %w", err)
	}
	out, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := writeTable(w, entries); err != nil {
		return 0, err
	}

	for _, f := range files {
		src := filepath.Join(sourceDir, f.Path)
		if cfg.progress != nil {
			cfg.progress(src)
		}
		if err := appendContent(w, src, f.Size); err != nil {
			return 0, fmt.Errorf("pack %s: %w", src, err)
		}
	}

	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("flush archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close archive: %w", err)
	}
	return len(files), nil
}

// writeTable emits the header, the entry table, and the trailer record.
func writeTable(w io.Writer, entries []Entry) error {
	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(entries)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var buf [EntrySize]byte
	for i, e := range entries {
		if err := e.EncodeTo(buf[:]); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("write entry %d: %w", i, err)
		}
	}

	if _, err := w.Write(Trailer()); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	return nil
}

// appendContent streams one source file into the content region,
// requiring exactly the size recorded at layout time so that the entry
// offsets stay valid.
func appendContent(w io.Writer, src string, size int64) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return fmt.Errorf("copy content: %w", err)
	}
	if n != size {
		return fmt.Errorf("size changed during pack: laid out %d bytes, copied %d", size, n)
	}
	return nil
}

// packConfig holds packing options.
type packConfig struct {
	progress func(path string)
}

// PackOption configures packing behavior.
type PackOption func(*packConfig)

// WithPackProgress calls fn with each source path before it is packed.
func WithPackProgress(fn func(path string)) PackOption {
	return func(c *packConfig) {
		c.progress = fn
	}
}
