// Package document locates, loads, backs up and saves the tagged-tree
// documents that idremap rewrites.
package document

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/nbt"
)

const (
	// Ext is the extension of player documents.
	Ext = ".dat"

	// backupMarker separates a document's base name from the backup time.
	backupMarker = "-backup--"

	// backupTimeLayout is the time format embedded in backup names.
	backupTimeLayout = "2006-01-02--15-04-05"
)

// digestKey keys the highwayhash digests used to compare document bytes.
var digestKey = []byte("idremap/document/backup-digest/0")

// Document is a decoded document together with the bytes it came from.
type Document struct {
	URL         string
	Root        *nbt.Tag
	Compression nbt.Compression
	Digest      uint64

	raw []byte
}

// Store reads and writes documents through an afs service, so any scheme
// afs supports works as a location.
type Store struct {
	fs afs.Service
}

// NewStore returns a Store on the default afs service.
func NewStore() *Store {
	return &Store{fs: afs.New()}
}

// Digest returns the highwayhash digest of data.
func Digest(data []byte) uint64 {
	return highwayhash.Sum64(data, digestKey)
}

// Load reads and decodes the document at location. The root must be a
// compound.
func (s *Store) Load(ctx context.Context, location string) (*Document, error) {
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, &IOError{Op: "read", URL: location, Cause: err}
	}

	root, c, err := nbt.Unmarshal(data)
	if err != nil {
		return nil, &DecodeError{URL: location, Cause: err}
	}
	if root.Kind() != nbt.KindCompound {
		return nil, &DecodeError{
			URL:   location,
			Cause: fmt.Errorf("root is %s, want Compound: %w", root.Kind(), oerrors.ErrUnsupportedTagKind),
		}
	}

	return &Document{
		URL:         location,
		Root:        root,
		Compression: c,
		Digest:      Digest(data),
		raw:         data,
	}, nil
}

// Subtree returns the root entry whose key matches key ignoring case,
// together with the key as stored. The entry must be a list or compound.
func Subtree(doc *Document, key string) (*nbt.Tag, string, error) {
	for _, e := range doc.Root.Entries() {
		if !strings.EqualFold(e.Key, key) {
			continue
		}
		if !e.Tag.Kind().IsContainer() {
			return nil, "", oerrors.NewDocumentError(
				fmt.Sprintf("entry %q is %s, want List or Compound", e.Key, e.Tag.Kind()),
				doc.URL, nil, oerrors.ErrUnsupportedTagKind)
		}
		return e.Tag, e.Key, nil
	}
	return nil, "", oerrors.NewNotFoundError(
		fmt.Sprintf("document has no %q entry", key), doc.URL,
		"check the inventoryKey setting")
}

// Replace returns a copy of doc whose root entry key holds subtree. The
// subtree must have the same kind as the entry it replaces.
func Replace(doc *Document, key string, subtree *nbt.Tag) (*Document, error) {
	prev, ok := doc.Root.Get(key)
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("document has no %q entry", key), doc.URL, "")
	}
	if prev.Kind() != subtree.Kind() {
		return nil, fmt.Errorf("replacing %q in %s: %s cannot replace %s: %w",
			key, doc.URL, subtree.Kind(), prev.Kind(), oerrors.ErrUnsupportedTagKind)
	}

	out := *doc
	out.Root = doc.Root.With(key, subtree)
	return &out, nil
}

// Encode returns the document bytes in its original compression.
func Encode(doc *Document) ([]byte, error) {
	data, err := nbt.Marshal(doc.Root, doc.Compression)
	if err != nil {
		return nil, &DecodeError{URL: doc.URL, Cause: err}
	}
	return data, nil
}

// Save writes doc to location.
func (s *Store) Save(ctx context.Context, doc *Document, location string) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.fs.Upload(ctx, location, 0o644, bytes.NewReader(data)); err != nil {
		return &IOError{Op: "write", URL: location, Cause: err}
	}
	return nil
}

// BackupName returns the backup file name for a document name at time at.
func BackupName(name string, at time.Time) string {
	return backupName(name, at, 0)
}

// backupName appends -n to the time when n is positive.
func backupName(name string, at time.Time, n int) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	stamp := at.Format(backupTimeLayout)
	if n > 0 {
		stamp += "-" + strconv.Itoa(n)
	}
	return base + backupMarker + stamp + Ext
}

// IsBackup reports whether name is a backup file name.
func IsBackup(name string) bool {
	return strings.Contains(name, backupMarker) && strings.HasSuffix(name, Ext)
}

// Backup writes the bytes doc was loaded from next to it, named by
// BackupName. When an existing backup of the same document holds identical
// bytes, no new backup is written and that backup's URL is returned with
// written false. An existing backup is never overwritten: when the name is
// taken by different bytes, -1, -2 and so on are appended to the time.
func (s *Store) Backup(ctx context.Context, doc *Document, at time.Time) (location string, written bool, err error) {
	parent, name := url.Split(doc.URL, file.Scheme)

	existing, err := s.backups(ctx, parent, name)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range existing {
		data, err := s.fs.DownloadWithURL(ctx, candidate)
		if err != nil {
			return "", false, &IOError{Op: "read", URL: candidate, Cause: err}
		}
		if Digest(data) == doc.Digest && bytes.Equal(data, doc.raw) {
			return candidate, false, nil
		}
	}

	taken := make(map[string]bool, len(existing))
	for _, candidate := range existing {
		taken[candidate] = true
	}
	location = url.Join(parent, BackupName(name, at))
	for n := 1; taken[location]; n++ {
		location = url.Join(parent, backupName(name, at, n))
	}
	if err := s.fs.Upload(ctx, location, 0o644, bytes.NewReader(doc.raw)); err != nil {
		return "", false, &IOError{Op: "backup", URL: location, Cause: err}
	}
	return location, true, nil
}

// backups lists the backups of the document called name in parent, newest
// name first.
func (s *Store) backups(ctx context.Context, parent, name string) ([]string, error) {
	objects, err := s.fs.List(ctx, parent)
	if err != nil {
		return nil, &IOError{Op: "list", URL: parent, Cause: err}
	}

	prefix := strings.TrimSuffix(name, path.Ext(name)) + backupMarker
	var out []string
	for _, obj := range objects {
		if obj.IsDir() || !strings.HasPrefix(obj.Name(), prefix) || !IsBackup(obj.Name()) {
			continue
		}
		out = append(out, url.Join(parent, obj.Name()))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

// Discover lists the documents directly inside dir, skipping backups,
// sorted by URL.
func (s *Store) Discover(ctx context.Context, dir string) ([]string, error) {
	objects, err := s.fs.List(ctx, dir)
	if err != nil {
		return nil, &IOError{Op: "list", URL: dir, Cause: err}
	}

	var out []string
	for _, obj := range objects {
		name := obj.Name()
		if obj.IsDir() || !strings.HasSuffix(name, Ext) || IsBackup(name) {
			continue
		}
		out = append(out, url.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}
