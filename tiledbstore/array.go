package tiledbstore

import (
	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// arrayOpen is a helper for opening a tiledb array, mirroring the teacher's
// ArrayOpen in tiledb.go.
func arrayOpen(ctx *tiledb.Context, uri string, mode tiledb.QueryType) (*tiledb.Array, error) {
	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return nil, err
	}

	if err := array.Open(mode); err != nil {
		array.Free()
		return nil, err
	}

	return array, nil
}

// zstdFilterList builds a single-stage zstandard compression filter list at
// the given level, mirroring the teacher's ZstdFilter/AddFilters pair.
func zstdFilterList(ctx *tiledb.Context, level int32) (*tiledb.FilterList, error) {
	filterList, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return nil, err
	}

	filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_ZSTD)
	if err != nil {
		filterList.Free()
		return nil, err
	}
	defer filt.Free()

	if err := filt.SetOption(tiledb.TILEDB_COMPRESSION_LEVEL, level); err != nil {
		filterList.Free()
		return nil, err
	}

	if err := filterList.AddFilter(filt); err != nil {
		filterList.Free()
		return nil, err
	}

	return filterList, nil
}
