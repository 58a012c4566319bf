package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/roadnet/export"
	"github.com/katalvlaran/roadnet/grid"
	"github.com/katalvlaran/roadnet/osmimport"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid scenario")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Parse decodes a YAML scenario over Default and validates it. Unknown
// keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	sc := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return sc, nil
}

// Load reads and parses the scenario at path (".sz" files are decompressed).
func Load(path string) (*Scenario, error) {
	r, err := export.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "config: read %s", path)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "config: %s", path)
	}

	return sc, nil
}

// Validate checks struct tags and the cross-field rules.
func (s *Scenario) Validate() error {
	var msgs []string
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		for _, e := range verrs {
			msgs = append(msgs, fieldMessage(e))
		}
	}
	if s.OSM == nil {
		switch {
		case len(s.Layout) == 0:
			msgs = append(msgs, "layout: required when osm is not set")
		default:
			for y, row := range s.Layout {
				if len(row) != len(s.Layout[0]) {
					msgs = append(msgs, fmt.Sprintf("layout[%d]: has %d columns, want %d", y, len(row), len(s.Layout[0])))
				}
			}
		}
	}
	if len(msgs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// fieldMessage renders one failure against its YAML path.
func fieldMessage(e validator.FieldError) string {
	path := e.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	switch e.Tag() {
	case "required":
		return path + ": field is required"
	case "gte", "min":
		return fmt.Sprintf("%s: must be at least %s", path, e.Param())
	case "lte", "max":
		return fmt.Sprintf("%s: must not exceed %s", path, e.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", path, e.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", path, e.Param())
	}

	return fmt.Sprintf("%s: validation failed (%s)", path, e.Tag())
}

// BuildWorld creates the scenario world and applies the zone section.
func (s *Scenario) BuildWorld(ctx context.Context) (*grid.World, error) {
	var (
		w   *grid.World
		err error
	)
	if s.OSM != nil {
		w, _, err = osmimport.ImportFile(ctx, s.OSM.Path, s.Seed, s.OSM.Config)
	} else {
		w, err = grid.ParseLayout(s.Layout, s.Seed)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "config: build world")
	}
	s.Zones.apply(w)

	return w, nil
}

func (z ZoneSection) apply(w *grid.World) {
	for i := range w.Len() {
		x, y := w.Coordinate(i)
		t := w.At(x, y)
		if !t.Overlay.IsZone() {
			continue
		}
		if z.Level > 0 {
			t.Level = uint8(z.Level)
		}
		if t.Overlay == grid.Residential {
			t.Occupants = z.ResidentialOccupants
		} else {
			t.Occupants = z.JobOccupants
		}
	}
	for _, ts := range z.Tiles {
		if !w.InBounds(ts.X, ts.Y) {
			continue
		}
		t := w.At(ts.X, ts.Y)
		if ts.Level > 0 && t.Overlay != grid.None {
			t.Level = uint8(ts.Level)
		}
		if ts.Occupants != nil && t.Overlay.IsZone() {
			t.Occupants = *ts.Occupants
		}
	}
}
