package assets

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bookloft/bookloft/pkg/errcodes"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Asset kinds accepted by Store.
const (
	KindCover   = "cover"
	KindContent = "content"
)

// kindDirs maps an asset kind to its fixed subtree under the upload root.
// No other subtrees exist and refs never nest deeper than one level.
var kindDirs = map[string]string{
	KindCover:   "covers",
	KindContent: "books",
}

// Manager persists uploaded files under a fixed directory tree and hands out
// relative references ("books/huozhe.txt") that Book records store.
type Manager struct {
	root string
	log  logger.Logger
}

// NewManager creates the upload root with its covers/ and books/ subtrees and
// verifies it is writable.
func NewManager(root string) (*Manager, error) {
	for _, dir := range kindDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create upload directory: %s", dir)
		}
	}

	// Verify write permissions by creating and removing a temp file
	testFile := filepath.Join(root, ".write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return nil, errors.Wrapf(err, "upload directory is not writable: %s", root)
	}
	f.Close()

	if err := os.Remove(testFile); err != nil {
		return nil, errors.Wrapf(err, "failed to clean up write test file: %s", testFile)
	}

	return &Manager{root: root, log: logger.New()}, nil
}

// Store writes data under the kind's subtree using a sanitized version of
// originalName and returns the relative reference. Odd filenames never fail;
// they sanitize to a generated fallback name. I/O failures come back as a
// generic storage error with the detail logged here.
func (m *Manager) Store(kind, originalName string, data []byte) (string, error) {
	dir, ok := kindDirs[kind]
	if !ok {
		return "", errors.Errorf("unknown asset kind: %s", kind)
	}

	name := SanitizeFilename(originalName)
	if name == "" {
		name = "upload-" + uuid.NewString()[:8]
	}

	ref := path.Join(dir, name)
	dst := filepath.Join(m.root, dir, name)

	// Write to a temp file in the same directory and rename so a ref never
	// points at a half-written file.
	tmp := dst + "." + uuid.NewString()[:8] + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		m.log.Err(err).Error("asset write failed", logger.Data{"ref": ref})
		return "", errcodes.StorageError()
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		m.log.Err(err).Error("asset rename failed", logger.Data{"ref": ref})
		return "", errcodes.StorageError()
	}

	return ref, nil
}

// Remove deletes the referenced file, best-effort. A missing file counts as
// success; anything else is logged as a warning and swallowed.
func (m *Manager) Remove(ref string) {
	abs, err := m.resolve(ref)
	if err != nil {
		m.log.Warn("asset remove skipped for invalid ref", logger.Data{"ref": ref})
		return
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		m.log.Err(err).Warn("asset remove failed", logger.Data{"ref": ref})
	}
}

// Read returns the bytes of the referenced file.
func (m *Manager) Read(ref string) ([]byte, error) {
	abs, err := m.resolve(ref)
	if err != nil {
		return nil, errcodes.NotFound("Asset")
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errcodes.NotFound("Asset")
		}
		m.log.Err(err).Error("asset read failed", logger.Data{"ref": ref})
		return nil, errcodes.StorageError()
	}

	return data, nil
}

// Resolve validates a reference and returns the absolute path of an existing
// file, for serving raw bytes.
func (m *Manager) Resolve(ref string) (string, error) {
	abs, err := m.resolve(ref)
	if err != nil {
		return "", errcodes.NotFound("File")
	}
	if _, err := os.Stat(abs); err != nil {
		return "", errcodes.NotFound("File")
	}
	return abs, nil
}

// resolve turns a relative reference into an absolute path under the root.
// Only "covers/<name>" and "books/<name>" resolve; anything with traversal
// segments, absolute prefixes, or extra nesting is rejected before
// concatenation.
func (m *Manager) resolve(ref string) (string, error) {
	cleaned := path.Clean(filepath.ToSlash(ref))
	if cleaned != ref {
		return "", errors.Errorf("invalid asset ref: %s", ref)
	}

	parts := strings.Split(cleaned, "/")
	if len(parts) != 2 || parts[1] == "" || strings.HasPrefix(parts[1], ".") {
		return "", errors.Errorf("invalid asset ref: %s", ref)
	}

	known := false
	for _, dir := range kindDirs {
		if parts[0] == dir {
			known = true
			break
		}
	}
	if !known {
		return "", errors.Errorf("invalid asset ref: %s", ref)
	}

	return filepath.Join(m.root, parts[0], parts[1]), nil
}
