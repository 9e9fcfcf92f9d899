package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/urfave/cli/v2"

	skyproj "github.com/sixy6e/go-skyproj"
	"github.com/sixy6e/go-skyproj/tiledbstore"
)

// projectFrame loads a calibration and a raw single-channel image off disk,
// remaps it through a ProjectionService, and persists the result as a
// TileDB array.
func projectFrame(calUri string, calHeight, calWidth int, imagePath, outUri string, resolution int, squareSize, cloudHeight, maxZenith float64) error {
	config, err := tiledb.NewConfig()
	if err != nil {
		return err
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return err
	}
	defer ctx.Free()

	log.Println("Reading calibration:", calUri)
	cal, err := tiledbstore.ReadCalibration(ctx, calUri, calHeight, calWidth)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return err
	}
	if len(raw) != calHeight*calWidth {
		return fmt.Errorf("image %s has %d bytes, want %d (%dx%d single channel)", imagePath, len(raw), calHeight*calWidth, calHeight, calWidth)
	}

	image := make([][][]uint8, calHeight)
	for r := 0; r < calHeight; r++ {
		image[r] = make([][]uint8, calWidth)
		for c := 0; c < calWidth; c++ {
			image[r][c] = []uint8{raw[r*calWidth+c]}
		}
	}

	settings, err := skyproj.NewProjectionSettings(resolution, squareSize, cloudHeight, maxZenith)
	if err != nil {
		return err
	}

	svc := skyproj.NewProjectionService(cal, settings)

	log.Println("Projecting frame")
	grid, _, err := svc.Project(image, true)
	if err != nil {
		return err
	}

	log.Println("Writing projected grid:", outUri)
	return tiledbstore.WriteGrid(ctx, outUri, grid)
}

// projectGeometryLine parses a "lon,lat,alt;lon,lat,alt;..." literal,
// projects it through an AircraftProjector centered on the given camera
// position, and prints the resulting pixel vertices.
func projectGeometryLine(cameraLat, cameraLon, cameraAlt float64, literal string) error {
	var line skyproj.Ring
	for _, vertex := range strings.Split(literal, ";") {
		parts := strings.Split(vertex, ",")
		if len(parts) != 3 {
			return fmt.Errorf("vertex %q is not lon,lat,alt", vertex)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return err
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return err
		}
		alt, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return err
		}
		line = append(line, skyproj.Vertex{C1: lon, C2: lat, C3: alt})
	}

	p := skyproj.NewAircraftProjector(cameraLat, cameraLon, cameraAlt, nil)
	defer p.Close()

	projected, err := skyproj.ProjectGeometry(p, skyproj.Geometry{Kind: skyproj.GeometryLineString, Line: line})
	if err != nil {
		return err
	}

	for i, v := range projected.Line {
		log.Printf("vertex %d: px=%.3f py=%.3f alt=%.3f\n", i, v.C1, v.C2, v.C3)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Name:  "skyproj",
		Usage: "fisheye sky-image and geodesic projection utilities",
		Commands: []*cli.Command{
			{
				Name:  "project",
				Usage: "remap a raw single-channel frame through a calibration map",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "calibration-uri", Required: true, Usage: "TileDB URI of a calibration array written by WriteCalibration."},
					&cli.IntFlag{Name: "calibration-height", Required: true, Usage: "Calibration map height in pixels."},
					&cli.IntFlag{Name: "calibration-width", Required: true, Usage: "Calibration map width in pixels."},
					&cli.StringFlag{Name: "image", Required: true, Usage: "Path to a raw single-channel uint8 image, row-major."},
					&cli.StringFlag{Name: "out-uri", Required: true, Usage: "TileDB URI to write the projected grid to."},
					&cli.IntFlag{Name: "resolution", Value: 1024},
					&cli.Float64Flag{Name: "square-size", Value: 75000},
					&cli.Float64Flag{Name: "cloud-height", Value: 10000},
					&cli.Float64Flag{Name: "max-zenith", Value: 80},
				},
				Action: func(cCtx *cli.Context) error {
					return projectFrame(
						cCtx.String("calibration-uri"),
						cCtx.Int("calibration-height"),
						cCtx.Int("calibration-width"),
						cCtx.String("image"),
						cCtx.String("out-uri"),
						cCtx.Int("resolution"),
						cCtx.Float64("square-size"),
						cCtx.Float64("cloud-height"),
						cCtx.Float64("max-zenith"),
					)
				},
			},
			{
				Name:  "project-geometry",
				Usage: "project a lon,lat,alt polyline literal through an AircraftProjector",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "camera-lat", Required: true},
					&cli.Float64Flag{Name: "camera-lon", Required: true},
					&cli.Float64Flag{Name: "camera-alt", Value: 0},
					&cli.StringFlag{Name: "line", Required: true, Usage: "lon,lat,alt;lon,lat,alt;..."},
				},
				Action: func(cCtx *cli.Context) error {
					return projectGeometryLine(
						cCtx.Float64("camera-lat"),
						cCtx.Float64("camera-lon"),
						cCtx.Float64("camera-alt"),
						cCtx.String("line"),
					)
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
