package tiledbstore

import (
	"errors"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// gridSchema builds a dense 3D (ROW, COL, CHANNEL) schema with a single
// uint8 attribute "value", zstandard-compressed.
func gridSchema(ctx *tiledb.Context, height, width, channels uint64) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer domain.Free()

	rowDim, err := tiledb.NewDimension(ctx, "row", tiledb.TILEDB_UINT64, []uint64{0, height - 1}, minUint64(height, 256))
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer rowDim.Free()

	colDim, err := tiledb.NewDimension(ctx, "col", tiledb.TILEDB_UINT64, []uint64{0, width - 1}, minUint64(width, 256))
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer colDim.Free()

	chanDim, err := tiledb.NewDimension(ctx, "channel", tiledb.TILEDB_UINT64, []uint64{0, channels - 1}, channels)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer chanDim.Free()

	if err := domain.AddDimensions(rowDim, colDim, chanDim); err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_DENSE)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	if err := schema.SetDomain(domain); err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}

	filters, err := zstdFilterList(ctx, 9)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer filters.Free()

	attr, err := tiledb.NewAttribute(ctx, "value", tiledb.TILEDB_UINT8)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer attr.Free()
	if err := attr.SetFilterList(filters); err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	if err := schema.AddAttributes(attr); err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}

	return schema, nil
}

// WriteGrid persists a projected output grid (shape height x width x
// channels) to uri as a dense TileDB array, creating the array first. It
// returns an ErrWrite error if an array already exists at uri; it does not
// write into an existing one.
func WriteGrid(ctx *tiledb.Context, uri string, grid [][][]uint8) error {
	height := uint64(len(grid))
	if height == 0 {
		return errors.Join(ErrWrite, errors.New("grid is empty"))
	}
	width := uint64(len(grid[0]))
	channels := uint64(0)
	if width > 0 {
		channels = uint64(len(grid[0][0]))
	}

	schema, err := gridSchema(ctx, height, width, channels)
	if err != nil {
		return err
	}
	defer schema.Free()

	if err := tiledb.CreateArray(ctx, uri, schema); err != nil {
		return errors.Join(ErrWrite, err)
	}

	array, err := arrayOpen(ctx, uri, tiledb.TILEDB_WRITE)
	if err != nil {
		return errors.Join(ErrWrite, err)
	}
	defer array.Free()
	defer array.Close()

	flat := make([]uint8, 0, height*width*channels)
	for _, row := range grid {
		for _, cell := range row {
			flat = append(flat, cell...)
		}
	}

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(ErrWrite, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return errors.Join(ErrWrite, err)
	}
	if _, err := query.SetDataBuffer("value", flat); err != nil {
		return errors.Join(ErrWrite, err)
	}

	subarr, err := array.NewSubarray()
	if err != nil {
		return errors.Join(ErrWrite, err)
	}
	defer subarr.Free()

	if err := subarr.AddRangeByName("row", tiledb.MakeRange(uint64(0), height-1)); err != nil {
		return errors.Join(ErrWrite, err)
	}
	if err := subarr.AddRangeByName("col", tiledb.MakeRange(uint64(0), width-1)); err != nil {
		return errors.Join(ErrWrite, err)
	}
	if err := subarr.AddRangeByName("channel", tiledb.MakeRange(uint64(0), channels-1)); err != nil {
		return errors.Join(ErrWrite, err)
	}
	if err := query.SetSubarray(subarr); err != nil {
		return errors.Join(ErrWrite, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return query.Finalize()
}
