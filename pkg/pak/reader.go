package pak

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Reader provides access to the entries of an open archive file.
type Reader struct {
	f       *os.File
	size    int64
	entries []Entry
}

// OpenReader opens the archive at the given path and parses its entry
// table. The caller must call Close when done.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	entries, err := Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &Reader{f: f, size: info.Size(), entries: entries}, nil
}

// Decode parses an archive header and entry table from r. The trailer
// and content region are left unread.
func Decode(r io.Reader) ([]Entry, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", truncated(err))
	}
	count := binary.LittleEndian.Uint32(header[:])

	// The declared count is untrusted until the table reads succeed.
	entries := make([]Entry, 0, int(min(int64(count), 1024)))
	var buf [EntrySize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("read entry %d of %d: %w", i, count, truncated(err))
		}
		var e Entry
		if err := e.DecodeFrom(buf[:]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadFile parses the entry table of the archive at the given path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// Entries returns the parsed directory entries in archive order.
func (r *Reader) Entries() []Entry {
	return r.entries
}

// FileCount returns the number of packed files.
func (r *Reader) FileCount() int {
	return len(r.entries)
}

// ContentSize returns the byte size of entry i's content, inferred from
// the following entry's offset, or from the archive size for the last
// entry.
func (r *Reader) ContentSize(i int) int64 {
	if i < len(r.entries)-1 {
		return int64(r.entries[i+1].Offset) - int64(r.entries[i].Offset)
	}
	return r.size - int64(r.entries[i].Offset)
}

// Close closes the underlying archive file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Extract writes every packed file under outputDir, creating parent
// directories as needed. It stops at the first failure; files already
// extracted remain in place. Returns the number of files written.
func (r *Reader) Extract(outputDir string, opts ...ExtractOption) (int, error) {
	cfg := &extractConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	createdDirs := make(map[string]struct{})

	for i, e := range r.entries {
		target, err := securePath(outputDir, e.Path)
		if err != nil {
			return i, fmt.Errorf("entry %d: %w", i, err)
		}

		size := r.ContentSize(i)
		if size < 0 || int64(e.Offset)+size > r.size {
			return i, fmt.Errorf("entry %d (%s): offset %d size %d exceeds archive size %d: %w",
				i, e.Path, e.Offset, size, r.size, ErrTruncated)
		}

		if cfg.progress != nil {
			cfg.progress(target)
		}

		dir := filepath.Dir(target)
		if _, exists := createdDirs[dir]; !exists {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return i, fmt.Errorf("create dir %s: %w", dir, err)
			}
			createdDirs[dir] = struct{}{}
		}

		if err := r.extractEntry(e, size, target); err != nil {
			return i, fmt.Errorf("entry %d (%s): %w", i, e.Path, err)
		}
	}

	return len(r.entries), nil
}

func (r *Reader) extractEntry(e Entry, size int64, target string) error {
	if _, err := r.f.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return fmt.Errorf("seek content: %w", err)
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.CopyN(out, r.f, size); err != nil {
		out.Close()
		return fmt.Errorf("copy content: %w", truncated(err))
	}
	return out.Close()
}

// securePath joins an entry path under the output directory, rejecting
// paths that would land outside it.
func securePath(outputDir, entryPath string) (string, error) {
	if filepath.IsAbs(entryPath) {
		return "", fmt.Errorf("path %q: %w", entryPath, ErrUnsafePath)
	}
	target := filepath.Join(outputDir, entryPath)
	rel, err := filepath.Rel(outputDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q: %w", entryPath, ErrUnsafePath)
	}
	return target, nil
}

// truncated maps end-of-file conditions to ErrTruncated, leaving other
// errors untouched.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%v: %w", err, ErrTruncated)
	}
	return err
}

// extractConfig holds extraction options.
type extractConfig struct {
	progress func(path string)
}

// ExtractOption configures extraction behavior.
type ExtractOption func(*extractConfig)

// WithExtractProgress calls fn with each destination path before the
// file is written.
func WithExtractProgress(fn func(path string)) ExtractOption {
	return func(c *extractConfig) {
		c.progress = fn
	}
}
