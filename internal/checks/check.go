// Package checks holds the structural lint checks fbxlint runs against a
// parsed document. Every check is pure: it reads the document, returns
// human-readable findings, and errors only when the data it needs is
// missing from the file.
package checks

import (
	"fmt"

	"github.com/ppiankov/fbxlint/internal/fbx"
	"github.com/ppiankov/fbxlint/internal/model"
)

// Check inspects one parsed document and reports findings. A returned
// error means the check could not run (missing data), not that the file
// failed it; failures are findings.
type Check interface {
	Name() string
	Description() string
	Run(doc *fbx.Document) ([]string, error)
}

// Registry assembles the enabled checks from configuration.
func Registry(cfg *model.ChecksConfig) ([]Check, error) {
	var cs []Check

	if cfg == nil || !cfg.CoordinateAxis.Disabled {
		check := NewCoordinateAxisCheck()
		if cfg != nil {
			if err := applyBasisOverrides(check, cfg.CoordinateAxis.Overrides); err != nil {
				return nil, err
			}
		}
		cs = append(cs, check)
	}

	return cs, nil
}

func applyBasisOverrides(check *CoordinateAxisCheck, overrides map[string]model.BasisOverride) error {
	for appName, o := range overrides {
		app, err := applicationByName(appName)
		if err != nil {
			return err
		}
		basis, err := parseBasisOverride(o)
		if err != nil {
			return fmt.Errorf("override for %s: %w", appName, err)
		}
		check.Override(app, basis)
	}
	return nil
}

func applicationByName(name string) (fbx.ApplicationName, error) {
	for _, app := range []fbx.ApplicationName{
		fbx.AppUnknown, fbx.AppMax, fbx.AppBlender, fbx.AppMaya, fbx.AppMotionBuilder,
	} {
		if app.String() == name {
			return app, nil
		}
	}
	return fbx.AppUnknown, fmt.Errorf("unknown application %q in checks config", name)
}

func parseBasisOverride(o model.BasisOverride) (CoordinateBasis, error) {
	up, err := ParseAxisLetter(o.Up)
	if err != nil {
		return CoordinateBasis{}, fmt.Errorf("up: %w", err)
	}
	front, err := ParseAxisLetter(o.Front)
	if err != nil {
		return CoordinateBasis{}, fmt.Errorf("front: %w", err)
	}
	coord, err := ParseAxisLetter(o.Coord)
	if err != nil {
		return CoordinateBasis{}, fmt.Errorf("coord: %w", err)
	}
	return CoordinateBasis{Up: up, Front: front, Coord: coord}, nil
}
