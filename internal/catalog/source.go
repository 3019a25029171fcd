package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"

	oerrors "github.com/coe-tools/idremap/internal/errors"
)

// Catalog file names inside a catalog directory.
const (
	ItemFile  = "item.csv"
	BlockFile = "block.csv"
)

var fs = afs.New()

// Source is one tabular input of a catalog.
type Source struct {
	Name   string
	Schema Schema

	// Load produces the parsed table. Errors matching ErrMalformedRecord
	// are returned as they are; any other error is reported as unavailable I/O.
	Load func(ctx context.Context) (*Table, error)
}

// CSVSource reads a CSV export from a local path or any URL afs understands.
func CSVSource(location string, schema Schema) Source {
	return Source{
		Name:   location,
		Schema: schema,
		Load: func(ctx context.Context) (*Table, error) {
			data, err := fs.DownloadWithURL(ctx, location)
			if err != nil {
				return nil, err
			}
			table, err := ReadCSV(bytes.NewReader(data))
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.Source = location
				return nil, malformed
			}
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", location, err)
			}
			return table, nil
		},
	}
}

// TableSource wraps an already parsed table.
func TableSource(name string, table *Table, schema Schema) Source {
	return Source{
		Name:   name,
		Schema: schema,
		Load: func(context.Context) (*Table, error) {
			return table, nil
		},
	}
}

// DirSources returns the item and block sources of a catalog directory.
func DirSources(dir string) []Source {
	return []Source{
		CSVSource(url.Join(dir, ItemFile), ItemSchema),
		CSVSource(url.Join(dir, BlockFile), BlockSchema),
	}
}

// Build loads and parses every source concurrently, waits for all of them,
// and merges the fragments in source order. The first failure cancels the
// context handed to the remaining loaders and is returned; no partial
// catalog is produced.
func Build(ctx context.Context, opts BuildOptions, sources ...Source) (*Catalog, error) {
	fragments := make([]*Fragment, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			table, err := src.Load(gctx)
			if errors.Is(err, oerrors.ErrMalformedRecord) {
				return err
			}
			if err != nil {
				return &SourceError{Source: src.Name, Cause: err}
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			frag, err := BuildFragment(src.Name, table, src.Schema, opts)
			if err != nil {
				return err
			}
			fragments[i] = frag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Merge(fragments...), nil
}
