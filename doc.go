// Package skyproj projects ground-based fisheye sky images onto a flat,
// regularly-sampled horizontal grid at an assumed cloud altitude, and
// projects georeferenced 3D points and geometries (aircraft tracks,
// airspace polygons) into the same pixel grid.
//
// The package is synchronous per call: no operation returns before its work
// is done. ProjectionService.Project and the AircraftProjector batch methods
// split their work across a worker Pool; that parallelism is deterministic
// given the same inputs. Nothing
// in this package writes to logs or touches the filesystem -- calibration
// loading, raw image decoding and persistence are collaborator concerns,
// see the sibling tiledbstore package and cmd/skyproj.
package skyproj
