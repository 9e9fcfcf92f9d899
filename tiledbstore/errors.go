// Package tiledbstore persists skyproj.CalibrationData and projected output
// grids as TileDB dense arrays. It is a collaborator package: core skyproj
// types never import it or TileDB-Go directly (spec §1's "file I/O is a
// collaborator responsibility").
package tiledbstore

import "errors"

// ErrCreateSchema is joined onto any failure building a TileDB array schema,
// mirroring the teacher's errors.Join(ErrCreateAttributeTdb, err) style.
var ErrCreateSchema = errors.New("tiledbstore: error creating array schema")

// ErrWrite is joined onto any failure during a write query.
var ErrWrite = errors.New("tiledbstore: error writing array")

// ErrRead is joined onto any failure during a read query.
var ErrRead = errors.New("tiledbstore: error reading array")
