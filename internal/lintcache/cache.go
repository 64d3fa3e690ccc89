// Package lintcache persists lint results between runs so that files whose
// content is unchanged are not parsed again.
//
// Entries are keyed by file path and validated by a content hash. The whole
// cache is discarded when the schema version or the configuration hash
// differs from the current run: any option can change any result, and the
// cache does not try to tell which.
package lintcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/zeebo/xxh3"

	"github.com/proplint/proplint/internal/diagnostic"
)

// SchemaVersion is bumped when the cache format or the diagnostics it holds
// change meaning. A mismatch drops every entry.
const SchemaVersion = 1

// FileName is the default cache location, relative to the working directory.
const FileName = ".proplintcache"

// Cache is the on-disk lint result cache.
type Cache struct {
	// V is the schema version. Must match SchemaVersion or the cache is
	// invalid.
	V int `json:"v"`

	// ConfigHash identifies the effective configuration the results were
	// produced with.
	ConfigHash string `json:"configHash"`

	Files map[string]Entry `json:"files,omitempty"`
}

// Entry holds the diagnostics of one file and the hash of the content they
// were computed from.
type Entry struct {
	Hash        string       `json:"hash"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Diagnostic is the stored form of a diagnostic.Diagnostic. The file is the
// entry key.
type Diagnostic struct {
	Severity diagnostic.Severity `json:"severity"`
	Category diagnostic.Category `json:"category"`
	Line     int                 `json:"line,omitzero"`
	Column   int                 `json:"column,omitzero"`
	Message  string              `json:"message"`
	Hint     string              `json:"hint,omitempty"`
}

// New creates an empty cache for the given configuration hash.
func New(configHash string) *Cache {
	return &Cache{V: SchemaVersion, ConfigHash: configHash, Files: make(map[string]Entry)}
}

// Load reads a cache file. It returns nil when the file is missing,
// unreadable or not a cache; callers treat nil as a miss for every file.
func Load(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	if c.Files == nil {
		c.Files = make(map[string]Entry)
	}
	return &c
}

// LoadFor returns the cache at path when it was written for configHash, and
// a fresh cache otherwise.
func LoadFor(path, configHash string) *Cache {
	if c := Load(path); c.IsValid(configHash) {
		return c
	}
	return New(configHash)
}

// Save writes the cache atomically (write to temp, rename).
func Save(path string, c *Cache) error {
	data, err := json.Marshal(c, json.Deterministic(true))
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}
	return nil
}

// Delete removes the cache file. Errors are ignored (file may not exist).
func Delete(path string) {
	os.Remove(path)
}

// IsValid reports whether the cache's entries may be reused under
// configHash.
func (c *Cache) IsValid(configHash string) bool {
	return c != nil && c.V == SchemaVersion && c.ConfigHash == configHash
}

// Lookup returns the cached diagnostics of path when its content still
// hashes to the stored value.
func (c *Cache) Lookup(path, hash string) ([]diagnostic.Diagnostic, bool) {
	if c == nil || hash == "" {
		return nil, false
	}
	e, ok := c.Files[path]
	if !ok || e.Hash != hash {
		return nil, false
	}
	out := make([]diagnostic.Diagnostic, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		out[i] = diagnostic.Diagnostic{
			Severity: d.Severity,
			Category: d.Category,
			File:     path,
			Line:     d.Line,
			Column:   d.Column,
			Message:  d.Message,
			Hint:     d.Hint,
		}
	}
	return out, true
}

// Store records the diagnostics of path for content hash. An empty hash
// (unreadable file) is not stored.
func (c *Cache) Store(path, hash string, diags []diagnostic.Diagnostic) {
	if hash == "" {
		return
	}
	e := Entry{Hash: hash}
	for _, d := range diags {
		e.Diagnostics = append(e.Diagnostics, Diagnostic{
			Severity: d.Severity,
			Category: d.Category,
			Line:     d.Line,
			Column:   d.Column,
			Message:  d.Message,
			Hint:     d.Hint,
		})
	}
	c.Files[path] = e
}

// Prune drops the entries of files not in keep.
func (c *Cache) Prune(keep []string) {
	live := make(map[string]bool, len(keep))
	for _, k := range keep {
		live[k] = true
	}
	for path := range c.Files {
		if !live[path] {
			delete(c.Files, path)
		}
	}
}

// Hash returns the hex xxh3 digest of data.
func Hash(data []byte) string {
	return strconv.FormatUint(xxh3.Hash(data), 16)
}

// HashFile hashes a file's contents. Returns empty string if the file can't
// be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return Hash(data)
}

// HashValue hashes the JSON encoding of v, such as an effective
// configuration.
func HashValue(v any) (string, error) {
	data, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
