// Package testutil provides test helpers for idremap tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coe-tools/idremap/internal/nbt"
)

// FixturePath returns the absolute path to a fixture under testdata/.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	// Walk up to the module root's testdata directory.
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(append([]string{dir, "testdata"}, parts...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find module root from %s", wd)
		}
		dir = parent
	}
}

// WriteFile creates a file with the given content in dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	return WriteBytes(t, dir, name, []byte(content))
}

// WriteBytes creates a file with raw content in dir and returns its path.
func WriteBytes(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteNBT encodes root with the given compression into dir/name.
func WriteNBT(t *testing.T, dir, name string, root *nbt.Tag, c nbt.Compression) string {
	t.Helper()
	data, err := nbt.Marshal(root, c)
	if err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return WriteBytes(t, dir, name, data)
}

// ReadNBT decodes the document at path.
func ReadNBT(t *testing.T, path string) (*nbt.Tag, nbt.Compression) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	root, c, err := nbt.Unmarshal(data)
	if err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
	return root, c
}

// Player builds a player document whose Inventory holds one item per id.
func Player(ids ...int16) *nbt.Tag {
	items := make([]*nbt.Tag, len(ids))
	for i, id := range ids {
		items[i] = nbt.NewCompound("",
			nbt.Entry{Key: "id", Tag: nbt.Short("id", id)},
			nbt.Entry{Key: "Count", Tag: nbt.Byte("Count", 1)},
			nbt.Entry{Key: "Damage", Tag: nbt.Short("Damage", 0)},
			nbt.Entry{Key: "Slot", Tag: nbt.Byte("Slot", int8(i))},
		)
	}
	return nbt.NewCompound("",
		nbt.Entry{Key: "Health", Tag: nbt.Short("Health", 20)},
		nbt.Entry{Key: "Inventory", Tag: nbt.NewList("Inventory", nbt.KindCompound, items...)},
		nbt.Entry{Key: "XpLevel", Tag: nbt.Int("XpLevel", 3)},
	)
}

// InventoryIDs returns the id of every item in root's Inventory.
func InventoryIDs(t *testing.T, root *nbt.Tag) []int16 {
	t.Helper()
	inv, ok := root.Get("Inventory")
	if !ok {
		t.Fatalf("document has no Inventory")
	}
	var out []int16
	for _, item := range inv.Items() {
		tag, ok := item.Get("id")
		if !ok {
			t.Fatalf("inventory item has no id: %s", item)
		}
		v, _ := tag.ShortValue()
		out = append(out, v)
	}
	return out
}

// CopyFixture copies a fixture directory under testdata/ to a temporary
// location and returns it.
func CopyFixture(t *testing.T, fixtureName string) string {
	t.Helper()
	src := FixturePath(t, fixtureName)
	dst := t.TempDir()

	if err := copyDir(src, dst); err != nil {
		t.Fatalf("failed to copy fixture %s: %v", fixtureName, err)
	}
	return dst
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(dstPath, info.Mode())
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(dstPath, data, info.Mode())
	})
}
