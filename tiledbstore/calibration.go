package tiledbstore

import (
	"errors"

	tiledb "github.com/TileDB-Inc/TileDB-Go"

	skyproj "github.com/sixy6e/go-skyproj"
)

// calibrationSchema builds a dense 2D (ROW, COL) array schema with two
// float64 attributes, azimuth and zenith, zstandard-compressed -- the same
// domain/attribute/filter construction the teacher's pingDenseSchema uses,
// narrowed to two fixed fields instead of a reflective schemaAttrs walk over
// struct tags (the teacher's stagparser-driven schema generation has no
// counterpart here: this schema is two known float64 arrays, not an
// arbitrary tagged struct, so it is declared directly).
func calibrationSchema(ctx *tiledb.Context, height, width uint64) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer domain.Free()

	rowTile := minUint64(height, 256)
	colTile := minUint64(width, 256)

	rowDim, err := tiledb.NewDimension(ctx, "row", tiledb.TILEDB_UINT64, []uint64{0, height - 1}, rowTile)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer rowDim.Free()

	colDim, err := tiledb.NewDimension(ctx, "col", tiledb.TILEDB_UINT64, []uint64{0, width - 1}, colTile)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer colDim.Free()

	if err := domain.AddDimensions(rowDim, colDim); err != nil {
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

	filters, err := zstdFilterList(ctx, 16)
	if err != nil {
		return nil, errors.Join(ErrCreateSchema, err)
	}
	defer filters.Free()

	for _, name := range []string{"azimuth", "zenith"} {
		attr, err := tiledb.NewAttribute(ctx, name, tiledb.TILEDB_FLOAT64)
		if err != nil {
			return nil, errors.Join(ErrCreateSchema, err)
		}
		if err := attr.SetFilterList(filters); err != nil {
			attr.Free()
			return nil, errors.Join(ErrCreateSchema, err)
		}
		if err := schema.AddAttributes(attr); err != nil {
			attr.Free()
			return nil, errors.Join(ErrCreateSchema, err)
		}
		attr.Free()
	}

	return schema, nil
}

// WriteCalibration persists cal's azimuth and zenith maps to uri as a dense
// TileDB array, creating the array first. It returns an ErrWrite error if
// an array already exists at uri; it does not write into an existing one.
func WriteCalibration(ctx *tiledb.Context, uri string, cal *skyproj.CalibrationData) error {
	height := uint64(cal.ImageSize[0])
	width := uint64(cal.ImageSize[1])

	schema, err := calibrationSchema(ctx, height, width)
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

	azimuth := flatten(cal.AzimuthMap)
	zenith := flatten(cal.ZenithMap)

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(ErrWrite, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return errors.Join(ErrWrite, err)
	}
	if _, err := query.SetDataBuffer("azimuth", azimuth); err != nil {
		return errors.Join(ErrWrite, err)
	}
	if _, err := query.SetDataBuffer("zenith", zenith); err != nil {
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
	if err := query.SetSubarray(subarr); err != nil {
		return errors.Join(ErrWrite, err)
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return query.Finalize()
}

// ReadCalibration reads back a CalibrationData previously written by
// WriteCalibration. height and width must match the shape it was written
// with (the caller is expected to know its own calibration's image_size,
// the same way the teacher's readers are handed an explicit npings rather
// than probing the array for its own extent).
func ReadCalibration(ctx *tiledb.Context, uri string, height, width int) (*skyproj.CalibrationData, error) {
	array, err := arrayOpen(ctx, uri, tiledb.TILEDB_READ)
	if err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	defer array.Free()
	defer array.Close()

	azimuth := make([]float64, height*width)
	zenith := make([]float64, height*width)

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	if _, err := query.SetDataBuffer("azimuth", azimuth); err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	if _, err := query.SetDataBuffer("zenith", zenith); err != nil {
		return nil, errors.Join(ErrRead, err)
	}

	subarr, err := array.NewSubarray()
	if err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	defer subarr.Free()

	if err := subarr.AddRangeByName("row", tiledb.MakeRange(uint64(0), uint64(height-1))); err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	if err := subarr.AddRangeByName("col", tiledb.MakeRange(uint64(0), uint64(width-1))); err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	if err := query.SetSubarray(subarr); err != nil {
		return nil, errors.Join(ErrRead, err)
	}

	if err := query.Submit(); err != nil {
		return nil, errors.Join(ErrRead, err)
	}

	return skyproj.NewCalibrationData(unflatten(azimuth, height, width), unflatten(zenith, height, width))
}

func flatten(grid [][]float64) []float64 {
	if len(grid) == 0 {
		return nil
	}
	width := len(grid[0])
	out := make([]float64, 0, len(grid)*width)
	for _, row := range grid {
		out = append(out, row...)
	}
	return out
}

func unflatten(flat []float64, height, width int) [][]float64 {
	out := make([][]float64, height)
	for r := 0; r < height; r++ {
		out[r] = flat[r*width : (r+1)*width]
	}
	return out
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
