package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/mat"
)

// Parameters obtained from the YAML scenario file
type ScenarioParameters struct {
	Title        string       `yaml:"Title"`
	FieldKind    string       `yaml:"FieldKind"` // "B" or "H"
	Polarization [3]float64   `yaml:"Polarization"`
	MeshFile     string       `yaml:"MeshFile"`
	ValidateMode string       `yaml:"ValidateMode"` // warn, raise or ignore
	Reorient     *bool        `yaml:"Reorient"`     // default true
	Observers    [][3]float64 `yaml:"Observers"`
	Grid         *GridSpec    `yaml:"Grid"`
}

// GridSpec describes a regular observation grid, an alternative to listing
// Observers explicitly. Each axis runs from Min to Max inclusive with N
// samples; N of 1 pins the axis at Min.
type GridSpec struct {
	Min [3]float64 `yaml:"Min"`
	Max [3]float64 `yaml:"Max"`
	N   [3]int     `yaml:"N"`
}

func (sp *ScenarioParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, sp); err != nil {
		return err
	}
	return sp.validate()
}

func (sp *ScenarioParameters) validate() error {
	switch sp.FieldKind {
	case "B", "b", "H", "h":
	case "":
		sp.FieldKind = "B"
	default:
		return fmt.Errorf("unknown FieldKind %q, must be B or H", sp.FieldKind)
	}
	if sp.MeshFile == "" {
		return fmt.Errorf("MeshFile is required")
	}
	if len(sp.Observers) == 0 && sp.Grid == nil {
		return fmt.Errorf("scenario needs Observers or a Grid")
	}
	if sp.Grid != nil {
		for d := 0; d < 3; d++ {
			if sp.Grid.N[d] < 1 {
				return fmt.Errorf("Grid.N[%d] = %d, must be at least 1", d, sp.Grid.N[d])
			}
		}
	}
	return nil
}

// ReorientEnabled reports the Reorient flag with its default of true when the
// scenario leaves it unset.
func (sp *ScenarioParameters) ReorientEnabled() bool {
	return sp.Reorient == nil || *sp.Reorient
}

// ObserverPoints collects the explicit Observers and the expanded Grid into a
// single (n x 3) matrix of observation points.
func (sp *ScenarioParameters) ObserverPoints() *mat.Dense {
	var pts [][3]float64
	pts = append(pts, sp.Observers...)
	if g := sp.Grid; g != nil {
		for i := 0; i < g.N[0]; i++ {
			for j := 0; j < g.N[1]; j++ {
				for k := 0; k < g.N[2]; k++ {
					pts = append(pts, [3]float64{
						axisSample(g.Min[0], g.Max[0], g.N[0], i),
						axisSample(g.Min[1], g.Max[1], g.N[1], j),
						axisSample(g.Min[2], g.Max[2], g.N[2], k),
					})
				}
			}
		}
	}
	obs := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		obs.SetRow(i, p[:])
	}
	return obs
}

func axisSample(min, max float64, n, i int) float64 {
	if n == 1 {
		return min
	}
	return min + (max-min)*float64(i)/float64(n-1)
}

func (sp *ScenarioParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%s]\t\t\t= Field Kind\n", sp.FieldKind)
	fmt.Printf("%v\t= Polarization\n", sp.Polarization)
	fmt.Printf("[%s]\t= Mesh File\n", sp.MeshFile)
	fmt.Printf("[%s]\t\t= Validate Mode\n", sp.ValidateMode)
	fmt.Printf("[%d]\t\t\t= Explicit Observers\n", len(sp.Observers))
	if sp.Grid != nil {
		fmt.Printf("%v -> %v x %v\t= Grid\n", sp.Grid.Min, sp.Grid.Max, sp.Grid.N)
	}
}
