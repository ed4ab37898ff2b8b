package flowdb

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GdsKey identifies a mask layer in a GDSII stream.
//
type GdsKey struct {
	Layer    int16
	Datatype int16
}

// RuleFiles are the technology-rule files handed to the pipeline stages.
//
type RuleFiles struct {
	Spacing     string `yaml:"spacing"`
	WidthArea   string `yaml:"width_area"`
	Enclosure   string `yaml:"enclosure"`
	WellContact string `yaml:"well_contact"`
}

// TechDB is the technology database shared by all hierarchy levels: stream
// units, the tech layer table, the GDS-to-tech layer mapping and the rule
// file paths. It is read-only once loaded, so graphs may share it freely.
//
type TechDB struct {
	dbUnit     float64 // meters per database unit
	dbuPerUU   float64 // database units per user unit
	layerNames []string
	layerIdx   map[string]int
	gdsToTech  map[GdsKey]int
	rules      RuleFiles
}

// DBUnit returns the size of one database unit in meters.
//
func (t *TechDB) DBUnit() float64 { return t.dbUnit }

// DBUPerUU returns the number of database units per user unit.
//
func (t *TechDB) DBUPerUU() float64 { return t.dbuPerUU }

// NumLayers returns the number of tech layers.
//
func (t *TechDB) NumLayers() int { return len(t.layerNames) }

// LayerName returns the name of the tech layer with the given id.
// It panics if the id is out of range.
//
func (t *TechDB) LayerName(id int) string {
	if id >= len(t.layerNames) {
		panic(outOfRange("tech layer", id, len(t.layerNames)))
	}
	return t.layerNames[id]
}

// LayerID returns the id of the named tech layer.
//
func (t *TechDB) LayerID(name string) (int, bool) {
	id, ok := t.layerIdx[name]
	return id, ok
}

// TechLayer maps a GDS (layer, datatype) pair to a tech layer id.
//
func (t *TechDB) TechLayer(k GdsKey) (int, bool) {
	id, ok := t.gdsToTech[k]
	return id, ok
}

// Rules returns the technology-rule file paths.
//
func (t *TechDB) Rules() RuleFiles { return t.rules }

// SetRules overrides the rule file paths (the driver does this when rule
// files are given on the command line).
//
func (t *TechDB) SetRules(r RuleFiles) { t.rules = r }

// techConfig is the YAML shape of a technology file.
type techConfig struct {
	Units struct {
		DBUnit   float64 `yaml:"db_unit"`
		DBUPerUU float64 `yaml:"dbu_per_uu"`
	} `yaml:"units"`
	Layers []struct {
		Name     string `yaml:"name"`
		Layer    int16  `yaml:"gds_layer"`
		Datatype int16  `yaml:"gds_datatype"`
	} `yaml:"layers"`
	Rules RuleFiles `yaml:"rules"`
}

func (c *techConfig) validate() error {
	var result *multierror.Error
	if c.Units.DBUnit <= 0 {
		result = multierror.Append(result, errors.New("units.db_unit must be positive"))
	}
	if c.Units.DBUPerUU <= 0 {
		result = multierror.Append(result, errors.New("units.dbu_per_uu must be positive"))
	}
	if len(c.Layers) == 0 {
		result = multierror.Append(result, errors.New("no layers defined"))
	}
	seen := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		if l.Name == "" {
			result = multierror.Append(result, errors.Errorf("layer %d has no name", i))
			continue
		}
		if seen[l.Name] {
			result = multierror.Append(result, errors.Errorf("duplicate layer name %q", l.Name))
		}
		seen[l.Name] = true
		if l.Layer < 0 {
			result = multierror.Append(result, errors.Errorf("layer %q: negative gds_layer", l.Name))
		}
	}
	return result.ErrorOrNil()
}

// LoadTechDB reads a technology file in YAML form and builds the database.
// All validation problems are reported in a single error.
//
func LoadTechDB(path string) (TechDB, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return TechDB{}, errors.Wrap(err, "read tech file")
	}
	var cfg techConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return TechDB{}, errors.Wrapf(err, "parse tech file %s", path)
	}
	if err := cfg.validate(); err != nil {
		return TechDB{}, errors.Wrapf(err, "invalid tech file %s", path)
	}
	t := TechDB{
		dbUnit:    cfg.Units.DBUnit,
		dbuPerUU:  cfg.Units.DBUPerUU,
		layerIdx:  make(map[string]int, len(cfg.Layers)),
		gdsToTech: make(map[GdsKey]int, len(cfg.Layers)),
		rules:     cfg.Rules,
	}
	for _, l := range cfg.Layers {
		id := len(t.layerNames)
		t.layerNames = append(t.layerNames, l.Name)
		t.layerIdx[l.Name] = id
		t.gdsToTech[GdsKey{Layer: l.Layer, Datatype: l.Datatype}] = id
	}
	return t, nil
}
