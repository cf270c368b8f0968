package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	delaunay "github.com/gorkemerdogan/DelaunayVoronoiCreator"
)

var (
	app     = kingpin.New("delaunay-demo", "Insert points one at a time and report how the triangulation evolves.")
	count   = app.Flag("count", "Number of random points after the three seeds.").Default("1000").Int()
	seed    = app.Flag("seed", "Random seed.").Default("42").Int64()
	stdin   = app.Flag("stdin", `Read points from stdin instead, one "x y" per line.`).Bool()
	pngPath = app.Flag("png", "Write a render of the final triangulation here.").String()
	scale   = app.Flag("scale", "Pixels per unit in the render.").Default("800").Float64()
	verbose = app.Flag("verbose", "Log every insertion.").Short('v').Bool()
)

// Demo of incremental triangulation. Starts from three fixed seeds and adds
// random points in the unit square, printing a line per step. Points that
// can't be inserted are reported and skipped.
func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(*verbose)
	app.FatalIfError(err, "creating logger")
	defer logger.Sync()

	var points []delaunay.Point
	if *stdin {
		points, err = readPoints(os.Stdin)
		app.FatalIfError(err, "reading points")
	} else {
		points = demoPoints(*seed, *count)
	}

	engine := delaunay.NewEmpty(delaunay.WithLogger(logger))
	for step, p := range points {
		result, err := engine.Insert(p)
		if err != nil {
			fmt.Printf("Step %d: skipped %v: %v\n", step+1, p, err)
			continue
		}
		fmt.Printf("Step %d: %d points, %d triangles (%s, %d flips)\n",
			step+1, engine.Len(), len(engine.Triangles()), describe(result), result.Flips)
	}

	snapshot := engine.Snapshot()
	unbounded := 0
	for _, cell := range snapshot.VoronoiCells() {
		if cell.Unbounded {
			unbounded++
		}
	}
	fmt.Printf("Done: %d points, %d triangles, %d hull points, %d unbounded cells\n",
		snapshot.Len(), len(snapshot.Triangles), len(snapshot.Hull()), unbounded)

	if *pngPath != "" {
		app.FatalIfError(snapshot.SavePNG(*pngPath, *scale), "rendering")
		fmt.Printf("Wrote %s\n", *pngPath)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}

func describe(result delaunay.InsertResult) string {
	if result.Seeding {
		return "seed"
	}
	return result.Kind.String()
}

// The three fixed seeds, then n uniform random points in the unit square.
func demoPoints(seed int64, n int) []delaunay.Point {
	points := []delaunay.Point{
		{X: 0.2, Y: 0.2},
		{X: 0.8, Y: 0.2},
		{X: 0.5, Y: 0.8},
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		points = append(points, delaunay.Point{X: rng.Float64(), Y: rng.Float64()})
	}
	return points
}

func readPoints(in io.Reader) ([]delaunay.Point, error) {
	var points []delaunay.Point
	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		point, err := parsePoint(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, point)
	}
	return points, scanner.Err()
}

func parsePoint(line string) (delaunay.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return delaunay.Point{}, errors.Errorf("expected two coordinates, got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return delaunay.Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return delaunay.Point{}, errors.Wrap(err, "y")
	}
	return delaunay.Point{X: x, Y: y}, nil
}
