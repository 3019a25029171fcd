package document

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/nbt"
	"github.com/coe-tools/idremap/internal/testutil"
)

var backupTime = time.Date(2026, 10, 18, 13, 4, 5, 0, time.UTC)

func TestBackupName(t *testing.T) {
	assert.Equal(t, "steve-backup--2026-10-18--13-04-05.dat", BackupName("steve.dat", backupTime))
	assert.Equal(t, "level-backup--2026-10-18--13-04-05.dat", BackupName("level", backupTime))

	assert.True(t, IsBackup("steve-backup--2026-10-18--13-04-05.dat"))
	assert.False(t, IsBackup("steve.dat"))
	assert.False(t, IsBackup("steve-backup--notes.txt"))
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest([]byte("abc")), Digest([]byte("abc")))
	assert.NotEqual(t, Digest([]byte("abc")), Digest([]byte("abd")))
}

func TestLoadAndSave(t *testing.T) {
	for _, c := range []nbt.Compression{nbt.CompressionNone, nbt.CompressionGzip, nbt.CompressionZlib} {
		t.Run(c.String(), func(t *testing.T) {
			dir := t.TempDir()
			src := testutil.WriteNBT(t, dir, "steve.dat", testutil.Player(100, 999), c)

			store := NewStore()
			doc, err := store.Load(context.Background(), src)
			require.NoError(t, err)
			assert.Equal(t, c, doc.Compression)
			assert.Equal(t, []int16{100, 999}, testutil.InventoryIDs(t, doc.Root))

			raw, err := os.ReadFile(src)
			require.NoError(t, err)
			assert.Equal(t, Digest(raw), doc.Digest)

			dst := filepath.Join(dir, "out", "steve.dat")
			require.NoError(t, store.Save(context.Background(), doc, dst))

			root, got := testutil.ReadNBT(t, dst)
			assert.Equal(t, c, got)
			assert.True(t, nbt.Equal(doc.Root, root))
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewStore()
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Load(ctx, filepath.Join(dir, "nope.dat"))
		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.True(t, errors.Is(err, oerrors.ErrIoUnavailable))
	})

	t.Run("garbage", func(t *testing.T) {
		p := testutil.WriteBytes(t, dir, "garbage.dat", []byte{0x0a, 0x00})
		_, err := store.Load(ctx, p)
		var decErr *DecodeError
		require.ErrorAs(t, err, &decErr)
	})

	t.Run("scalar root", func(t *testing.T) {
		p := testutil.WriteNBT(t, dir, "scalar.dat", nbt.Int("x", 1), nbt.CompressionNone)
		_, err := store.Load(ctx, p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrUnsupportedTagKind))
	})
}

func loadPlayer(t *testing.T, ids ...int16) (*Store, *Document, string) {
	t.Helper()
	dir := t.TempDir()
	p := testutil.WriteNBT(t, dir, "steve.dat", testutil.Player(ids...), nbt.CompressionGzip)
	store := NewStore()
	doc, err := store.Load(context.Background(), p)
	require.NoError(t, err)
	return store, doc, dir
}

func TestSubtree(t *testing.T) {
	_, doc, _ := loadPlayer(t, 1, 2)

	inv, key, err := Subtree(doc, "inventory")
	require.NoError(t, err)
	assert.Equal(t, "Inventory", key)
	assert.Equal(t, 2, inv.Len())

	_, _, err = Subtree(doc, "EnderItems")
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))

	_, _, err = Subtree(doc, "health")
	assert.True(t, errors.Is(err, oerrors.ErrUnsupportedTagKind))
}

func TestReplace(t *testing.T) {
	_, doc, _ := loadPlayer(t, 1, 2)

	next := testutil.Player(7)
	inv, _ := next.Get("Inventory")

	out, err := Replace(doc, "Inventory", inv)
	require.NoError(t, err)
	assert.Equal(t, []int16{7}, testutil.InventoryIDs(t, out.Root))
	assert.Equal(t, []int16{1, 2}, testutil.InventoryIDs(t, doc.Root))

	var keys []string
	for _, e := range out.Root.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"Health", "Inventory", "XpLevel"}, keys)

	_, err = Replace(doc, "Inventory", nbt.NewCompound("Inventory"))
	assert.True(t, errors.Is(err, oerrors.ErrUnsupportedTagKind))

	_, err = Replace(doc, "Missing", inv)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestBackup(t *testing.T) {
	store, doc, dir := loadPlayer(t, 100)
	ctx := context.Background()

	first, written, err := store.Backup(ctx, doc, backupTime)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "steve-backup--2026-10-18--13-04-05.dat", path.Base(first))

	raw, err := os.ReadFile(filepath.Join(dir, "steve-backup--2026-10-18--13-04-05.dat"))
	require.NoError(t, err)
	assert.Equal(t, doc.Digest, Digest(raw))

	again, written, err := store.Backup(ctx, doc, backupTime.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, written, "identical backup already exists")
	assert.Equal(t, path.Base(first), path.Base(again))

	changed := testutil.WriteNBT(t, dir, "steve.dat", testutil.Player(101), nbt.CompressionGzip)
	doc, err = store.Load(ctx, changed)
	require.NoError(t, err)

	second, written, err := store.Backup(ctx, doc, backupTime.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "steve-backup--2026-10-18--14-04-05.dat", path.Base(second))
}

func TestBackupNeverOverwrites(t *testing.T) {
	store, doc, dir := loadPlayer(t, 100)
	ctx := context.Background()

	first, written, err := store.Backup(ctx, doc, backupTime)
	require.NoError(t, err)
	require.True(t, written)

	names := []string{path.Base(first)}
	for _, id := range []int16{101, 102} {
		src := testutil.WriteNBT(t, dir, "steve.dat", testutil.Player(id), nbt.CompressionGzip)
		next, err := store.Load(ctx, src)
		require.NoError(t, err)

		loc, written, err := store.Backup(ctx, next, backupTime)
		require.NoError(t, err)
		assert.True(t, written)
		names = append(names, path.Base(loc))
	}

	assert.Equal(t, []string{
		"steve-backup--2026-10-18--13-04-05.dat",
		"steve-backup--2026-10-18--13-04-05-1.dat",
		"steve-backup--2026-10-18--13-04-05-2.dat",
	}, names)

	for i, id := range []int16{100, 101, 102} {
		root, _ := testutil.ReadNBT(t, filepath.Join(dir, names[i]))
		assert.Equal(t, []int16{id}, testutil.InventoryIDs(t, root), names[i])
	}
	assert.True(t, IsBackup(names[2]))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteNBT(t, dir, "b.dat", testutil.Player(1), nbt.CompressionGzip)
	testutil.WriteNBT(t, dir, "a.dat", testutil.Player(1), nbt.CompressionGzip)
	testutil.WriteNBT(t, dir, "a-backup--2026-10-18--13-04-05.dat", testutil.Player(1), nbt.CompressionGzip)
	testutil.WriteFile(t, dir, "notes.txt", "hello")
	testutil.WriteNBT(t, dir, "sub/c.dat", testutil.Player(1), nbt.CompressionGzip)

	docs, err := NewStore().Discover(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, d := range docs {
		names = append(names, path.Base(d))
	}
	assert.Equal(t, []string{"a.dat", "b.dat"}, names)
}
