package flowdb

import (
	"os"

	"github.com/pkg/errors"

	"github.com/cktlab/flowdb/internal/gdsii"
)

// ParseGDS reads the GDSII stream file at path and populates the graph's
// mask data and layout shapes with the polygons whose (layer, datatype) pair
// is mapped in the technology database. The structure matching the graph's
// ref name is used; if none matches, the first structure is taken.
//
// On error the graph's payload is left untouched.
//
func (g *Graph) ParseGDS(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open stream file")
	}
	defer f.Close()

	lib, err := gdsii.Parse(f)
	if err != nil {
		return errors.Wrapf(err, "parse stream file %s", path)
	}
	if len(lib.Cells) == 0 {
		return errors.Errorf("stream file %s has no structures", path)
	}
	cell := lib.Cell(g.refName)
	if cell == nil {
		cell = &lib.Cells[0]
	}

	var data GdsData
	data.SetCellName(cell.Name)
	data.SetUnits(lib.UserUnit, lib.DBUnit)
	for _, el := range cell.Elements {
		layer, ok := g.techDB.TechLayer(GdsKey{Layer: el.Layer, Datatype: el.Datatype})
		if !ok {
			continue
		}
		poly := make(Polygon, 0, len(el.XY)/2)
		for i := 0; i+1 < len(el.XY); i += 2 {
			poly = append(poly, Point{X: Coord(el.XY[i]), Y: Coord(el.XY[i+1])})
		}
		data.AddPoly(GdsPoly{Layer: layer, Points: poly})
	}

	g.gdsData = data
	for i := 0; i < g.gdsData.NumPolys(); i++ {
		p := g.gdsData.Poly(i)
		g.layout.AddShape(p.Layer, p.Points.Bounds())
	}
	return nil
}
