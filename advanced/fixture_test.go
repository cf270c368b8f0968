package advanced

import (
	"embed"
	"log"
	"math"
	"math/rand"
	"strconv"

	"github.com/JoshVarga/svgparser"
	"gopkg.in/yaml.v3"
)

// Point clouds for tests. SVG fixtures are read for the centers of their
// circles and nothing else; scenarios.yaml holds small hand-checked insertion
// sequences. Anything malformed is fatal.

//go:embed fixtures
var fixtures embed.FS

func LoadPointFixture(name string) []Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	circles := rootEl.FindAll("circle")
	if len(circles) == 0 {
		log.Fatalf("No circles found in fixture %q", name)
	}

	points := make([]Point, 0, len(circles))
	for _, circle := range circles {
		x, err := strconv.ParseFloat(circle.Attributes["cx"], 64)
		if err != nil {
			log.Fatalf("Invalid cx value %q: %v", circle.Attributes["cx"], err)
		}
		y, err := strconv.ParseFloat(circle.Attributes["cy"], 64)
		if err != nil {
			log.Fatalf("Invalid cy value %q: %v", circle.Attributes["cy"], err)
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

type Scenario struct {
	Name      string      `yaml:"name"`
	Seeds     [][]float64 `yaml:"seeds"`
	Insert    [][]float64 `yaml:"insert"`
	Errors    []string    `yaml:"errors"`
	SeedError string      `yaml:"seedError"`
	Triangles int         `yaml:"triangles"`
	Hull      int         `yaml:"hull"`
	Bounded   []PointID   `yaml:"bounded"`
}

func (s Scenario) SeedPoints() []Point {
	return toPoints(s.Seeds)
}

func (s Scenario) InsertPoints() []Point {
	return toPoints(s.Insert)
}

// Expected error kind for the i'th inserted point, "" for none.
func (s Scenario) ErrorFor(i int) string {
	if i < len(s.Errors) {
		return s.Errors[i]
	}
	return ""
}

func toPoints(raw [][]float64) []Point {
	points := make([]Point, 0, len(raw))
	for _, xy := range raw {
		if len(xy) != 2 {
			log.Fatalf("Invalid point %v", xy)
		}
		points = append(points, Point{X: xy[0], Y: xy[1]})
	}
	return points
}

func LoadScenarios() []Scenario {
	data, err := fixtures.ReadFile("fixtures/scenarios.yaml")
	if err != nil {
		log.Fatalf("Could not load scenarios: %v", err)
	}
	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		log.Fatalf("Failed to parse scenarios: %v", err)
	}
	return scenarios
}

// Some ad hoc point sets

// Uniform random points in the unit square.
func RandomPoints(seed int64, n int) []Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}
	return points
}

// An n by n integer grid, which is as cocircular as input gets.
func Grid(n int) []Point {
	var points []Point
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			points = append(points, Point{X: float64(x), Y: float64(y)})
		}
	}
	return points
}

// Points on a circle with its center in the middle of the list.
func Ring(n int, radius float64) []Point {
	var points []Point
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
		if i == n/2 {
			points = append(points, Point{})
		}
	}
	return points
}

// Points along a line, then one off it.
func Fence(n int) []Point {
	var points []Point
	for i := 0; i < n; i++ {
		points = append(points, Point{X: float64(i), Y: 0.5 * float64(i)})
	}
	return append(points, Point{X: 0, Y: 10})
}
