package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/testutil"
)

const itemCSV = `Name,ID,Has Item,Mod,Class
modA:Iron Sword,100,true,modA,sword_item
modA:Iron Pick,101,true,modA,pick_item
modB:Ruby,50,true,modB,gem
Minecraft:Stone,1,false,Minecraft,tile.stone
unnamed,7,false,,thing
`

const blockCSV = `Name,ID,Has Block,Mod,Class
modA:Ore,300,true,modA,ore_block
Minecraft:Stone,1,true,Minecraft,tile.stone
`

func mustTable(t *testing.T, text string) *Table {
	t.Helper()
	table, err := ReadCSV(strings.NewReader(text))
	require.NoError(t, err)
	return table
}

func TestReadCSV(t *testing.T) {
	table := mustTable(t, "\ufeffName , ID\nfoo:bar,1\n\nshort\n")

	assert.Equal(t, []string{"Name", "ID"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "foo:bar", table.Rows[0]["Name"])
	assert.Equal(t, "1", table.Rows[0]["ID"])
	assert.Equal(t, "short", table.Rows[1]["Name"])
	assert.Empty(t, table.Rows[1]["ID"])

	empty, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Header)
}

func TestReadCSVSyntaxError(t *testing.T) {
	for name, text := range map[string]string{
		"header":             "Name,\"ID\n",
		"unterminated quote": "Name,ID\nfoo:bar,1\n\"foo:baz,2\n",
		"bare quote":         "Name,ID\nfoo:12\" pipe,3\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(text))
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrMalformedRecord)

			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Empty(t, malformed.Column)
		})
	}
}

func TestBuildFragmentGroupsByNamespace(t *testing.T) {
	frag, err := BuildFragment("item", mustTable(t, itemCSV), ItemSchema, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 5, frag.Rows)
	assert.Equal(t, []string{"Minecraft", "modA", "modB", "unnamed"}, frag.Namespaces())

	total := 0
	for _, ns := range frag.Namespaces() {
		for _, r := range frag.Records(ns) {
			assert.Equal(t, ns, r.Namespace)
			total++
		}
	}
	assert.Equal(t, 5, total, "every row lands in exactly one namespace")

	assert.Equal(t, []Record{
		{Namespace: "modA", SymbolicName: "sword_item", DisplayName: "Iron Sword", ID: 100},
		{Namespace: "modA", SymbolicName: "pick_item", DisplayName: "Iron Pick", ID: 101},
	}, frag.Records("modA"))
}

func TestBuildFragmentNameWithoutColon(t *testing.T) {
	frag, err := BuildFragment("item", mustTable(t, itemCSV), ItemSchema, BuildOptions{})
	require.NoError(t, err)

	records := frag.Records("unnamed")
	require.Len(t, records, 1)
	assert.Empty(t, records[0].DisplayName)
	assert.Equal(t, "thing", records[0].SymbolicName)
}

func TestBuildFragmentSplitsAtLastColon(t *testing.T) {
	table := mustTable(t, "Name,ID,Has Item,Mod,Class\na:b:c,5,true,a,x\n")

	frag, err := BuildFragment("item", table, ItemSchema, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, []Record{{Namespace: "a:b", SymbolicName: "x", DisplayName: "c", ID: 5}}, frag.Records("a:b"))
}

func TestBuildFragmentSchemaMismatch(t *testing.T) {
	table := mustTable(t, "Name,ID,Mod\nmodA:x,1,modA\n")

	_, err := BuildFragment("item.csv", table, ItemSchema, BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrSchemaMismatch)

	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"Has Item", "Class"}, mismatch.Missing)
	assert.Equal(t, "item.csv", mismatch.Source)
}

func TestBuildFragmentMalformedRecord(t *testing.T) {
	header := "Name,ID,Has Item,Mod,Class\n"
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"non numeric id", "modA:x,abc,true,modA,x", ColumnID},
		{"id overflows int16", "modA:x,40000,true,modA,x", ColumnID},
		{"empty id", "modA:x,,true,modA,x", ColumnID},
		{"bad boolean", "modA:x,1,maybe,modA,x", "Has Item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFragment("item", mustTable(t, header+tt.row+"\n"), ItemSchema, BuildOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrMalformedRecord)

			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, 1, malformed.Row)
			assert.Equal(t, tt.column, malformed.Column)
		})
	}
}

func TestBuildFragmentNegativeIDs(t *testing.T) {
	table := mustTable(t, "Name,ID,Has Item,Mod,Class\nm:a,-5,true,m,a\nm:b,3,true,m,b\nm:c,-32768,true,m,c\n")

	frag, err := BuildFragment("item", table, ItemSchema, BuildOptions{})
	require.NoError(t, err)

	var ids []int16
	for _, r := range frag.Records("m") {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int16{-32768, -5, 3}, ids, "signed ordering")
}

func TestBuildFragmentCollapsesDuplicates(t *testing.T) {
	table := mustTable(t, `Name,ID,Has Item,Mod,Class
m:Old Label,10,true,m,thing
m:Other,10,true,m,other
m:New Label,10,true,m,thing
`)

	frag, err := BuildFragment("item", table, ItemSchema, BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{Namespace: "m", SymbolicName: "other", DisplayName: "Other", ID: 10},
		{Namespace: "m", SymbolicName: "thing", DisplayName: "New Label", ID: 10},
	}, frag.Records("m"), "records sharing an ID but not a symbolic name are both kept")
}

func TestBuildFragmentProgress(t *testing.T) {
	var rows strings.Builder
	rows.WriteString("Name,ID,Has Item,Mod,Class\n")
	for i := range 10 {
		rows.WriteString("m:x,")
		rows.WriteString(string(rune('0' + i)))
		rows.WriteString(",true,m,x\n")
	}

	var seen []int
	_, err := BuildFragment("item", mustTable(t, rows.String()), ItemSchema, BuildOptions{
		Progress: func(source string, pct int) {
			assert.Equal(t, "item", source)
			seen = append(seen, pct)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{25, 50, 75, 100}, seen)
}

func TestMergeUnionsNamespaces(t *testing.T) {
	items, err := BuildFragment("item", mustTable(t, itemCSV), ItemSchema, BuildOptions{})
	require.NoError(t, err)
	blocks, err := BuildFragment("block", mustTable(t, blockCSV), BlockSchema, BuildOptions{})
	require.NoError(t, err)

	cat := Merge(items, blocks)

	assert.Equal(t, []string{"Minecraft", "modA", "modB", "unnamed"}, cat.Namespaces())
	assert.Len(t, cat.Records("modA"), 3)
	assert.Len(t, cat.Records("Minecraft"), 1, "identical records from both sources collapse")
	assert.Equal(t, 6, cat.Len())
	assert.True(t, cat.Has("modB"))
	assert.False(t, cat.Has("modZ"))
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	items := mustTable(t, itemCSV)
	blocks := mustTable(t, blockCSV)

	seqItems, err := BuildFragment("item", items, ItemSchema, BuildOptions{})
	require.NoError(t, err)
	seqBlocks, err := BuildFragment("block", blocks, BlockSchema, BuildOptions{})
	require.NoError(t, err)
	sequential := Merge(seqItems, seqBlocks)

	for range 20 {
		parallel, err := Build(context.Background(), BuildOptions{},
			TableSource("item", items, ItemSchema),
			TableSource("block", blocks, BlockSchema),
		)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel)
	}
}

func TestBuildFailsFast(t *testing.T) {
	boom := errors.New("disk on fire")
	blocked := Source{
		Name:   "slow",
		Schema: BlockSchema,
		Load: func(ctx context.Context) (*Table, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	broken := Source{
		Name:   "broken",
		Schema: ItemSchema,
		Load: func(context.Context) (*Table, error) {
			return nil, boom
		},
	}

	cat, err := Build(context.Background(), BuildOptions{}, blocked, broken)
	require.Error(t, err)
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, oerrors.ErrIoUnavailable)
	assert.ErrorIs(t, err, boom)
}

func TestBuildPropagatesMalformed(t *testing.T) {
	bad := mustTable(t, "Name,ID,Has Item,Mod,Class\nm:x,oops,true,m,x\n")

	_, err := Build(context.Background(), BuildOptions{},
		TableSource("item", bad, ItemSchema),
		TableSource("block", mustTable(t, blockCSV), BlockSchema),
	)
	assert.ErrorIs(t, err, oerrors.ErrMalformedRecord)
}

func TestDirSources(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ItemFile, itemCSV)
	testutil.WriteFile(t, dir, BlockFile, blockCSV)

	cat, err := Build(context.Background(), BuildOptions{}, DirSources(dir)...)
	require.NoError(t, err)
	assert.Equal(t, 6, cat.Len())
}

func TestDirSourcesMissingFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ItemFile, itemCSV)

	_, err := Build(context.Background(), BuildOptions{}, DirSources(dir)...)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrIoUnavailable)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.True(t, strings.HasSuffix(srcErr.Source, BlockFile), srcErr.Source)
}

func TestDirSourcesSyntaxErrorIsMalformed(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ItemFile, "Name,ID,Has Item,Mod,Class\n\"modA:Sword,100,true,modA,sword_item\n")
	testutil.WriteFile(t, dir, BlockFile, blockCSV)

	_, err := Build(context.Background(), BuildOptions{}, DirSources(dir)...)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrMalformedRecord)
	assert.NotErrorIs(t, err, oerrors.ErrIoUnavailable)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.True(t, strings.HasSuffix(malformed.Source, ItemFile), malformed.Source)
	assert.Contains(t, err.Error(), ItemFile)
}
