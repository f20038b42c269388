package checks

import (
	"errors"
	"fmt"

	"github.com/ppiankov/fbxlint/internal/fbx"
)

// The coordinate-axis check exists for files exported from Blender 2.90+.
// Unity imports such files with an unintended counter-rotation unless the
// export carries a corrected axis convention, so the convention is checked
// here before the file reaches the content pipeline.
// https://forum.unity.com/threads/bake-axis-conversion-import-setting.899072/#post-6975023

// ErrMissingAxisData reports that a document does not declare a complete
// coordinate-axis convention in its global settings.
var ErrMissingAxisData = errors.New("could not find coordinate axis")

// Axis is a signed unit step along exactly one of the three coordinate
// directions: one component is ±1, the other two are zero.
type Axis struct {
	X, Y, Z int8
}

// Letter renders the axis as one of the six signed-letter pairs
// +X, -X, +Y, -Y, +Z, -Z.
func (a Axis) Letter() string {
	switch a {
	case Axis{X: 1}:
		return "+X"
	case Axis{X: -1}:
		return "-X"
	case Axis{Y: 1}:
		return "+Y"
	case Axis{Y: -1}:
		return "-Y"
	case Axis{Z: 1}:
		return "+Z"
	case Axis{Z: -1}:
		return "-Z"
	}
	// Only reachable through a bug in extraction or in the policy table.
	panic(fmt.Sprintf("invalid coordinate axis (%d,%d,%d)", a.X, a.Y, a.Z))
}

// ParseAxisLetter is the inverse of Letter over the same six strings.
func ParseAxisLetter(s string) (Axis, error) {
	switch s {
	case "+X":
		return Axis{X: 1}, nil
	case "-X":
		return Axis{X: -1}, nil
	case "+Y":
		return Axis{Y: 1}, nil
	case "-Y":
		return Axis{Y: -1}, nil
	case "+Z":
		return Axis{Z: 1}, nil
	case "-Z":
		return Axis{Z: -1}, nil
	}
	return Axis{}, fmt.Errorf("invalid axis letter %q", s)
}

// CoordinateBasis is the orientation convention a document declares (or an
// application is expected to declare): which signed world axis is up, which
// is front, and which is the primary coordinate axis. The three axes are
// compared structurally; the check does not require them to be orthogonal.
type CoordinateBasis struct {
	Up    Axis
	Front Axis
	Coord Axis
}

// Triplet renders the basis in Front/Up/Coord order for diagnostics.
func (b CoordinateBasis) Triplet() string {
	return fmt.Sprintf("Front:%s,Up:%s,Coord:%s",
		b.Front.Letter(), b.Up.Letter(), b.Coord.Letter())
}

// extractAxis reads the axis-index property name and its companion
// name+"Sign" from the global settings. Both must carry a 32-bit integer
// as their first value; the index selects the dimension (0 X, 1 Y, 2 Z)
// and the sign value is truncated to int8 and stored verbatim. Anything
// else reads as absence.
func extractAxis(gs *fbx.PropertyBag, name string) (Axis, bool) {
	index, ok := int32Property(gs, name)
	if !ok {
		return Axis{}, false
	}
	rawSign, ok := int32Property(gs, name+"Sign")
	if !ok {
		return Axis{}, false
	}

	// Truncation, not clamping: the container stores the sign as a full
	// int32 and the check accepts whatever narrows out of it.
	sign := int8(rawSign)
	switch index {
	case 0:
		return Axis{X: sign}, true
	case 1:
		return Axis{Y: sign}, true
	case 2:
		return Axis{Z: sign}, true
	}
	return Axis{}, false
}

func int32Property(gs *fbx.PropertyBag, name string) (int32, bool) {
	prop := gs.Property(name)
	if prop == nil {
		return 0, false
	}
	attr, ok := prop.Value(0)
	if !ok {
		return 0, false
	}
	return attr.Int32()
}

// fullBasis extracts the basis a document declares. It reports absence when
// the document has no global settings or when any of the three axes is
// missing or malformed; a partial basis is never returned.
func fullBasis(doc *fbx.Document) (CoordinateBasis, bool) {
	gs := doc.GlobalSettings()
	if gs == nil {
		return CoordinateBasis{}, false
	}

	up, ok := extractAxis(gs, "UpAxis")
	if !ok {
		return CoordinateBasis{}, false
	}
	front, ok := extractAxis(gs, "FrontAxis")
	if !ok {
		return CoordinateBasis{}, false
	}
	coord, ok := extractAxis(gs, "CoordAxis")
	if !ok {
		return CoordinateBasis{}, false
	}

	return CoordinateBasis{Up: up, Front: front, Coord: coord}, true
}

// defaultExpectedBasis returns the convention each authoring tool should
// declare.
//
// The default equals Unity's native Y-up convention: everything not
// special-cased (Maya included) should export a file the engine takes
// as-is. 3DS Max exports in its own native Z-up convention and the import
// pipeline bakes the axis conversion. Blender files are expected with a
// 180° flip from Blender's native axes; importing Blender's literal
// convention triggers the engine bug referenced above.
func defaultExpectedBasis(app fbx.ApplicationName) CoordinateBasis {
	switch app {
	case fbx.AppMax:
		return CoordinateBasis{
			Up:    Axis{Z: 1},
			Front: Axis{Y: -1},
			Coord: Axis{X: 1},
		}
	case fbx.AppBlender:
		return CoordinateBasis{
			Up:    Axis{Z: 1},
			Front: Axis{Y: 1},
			Coord: Axis{X: -1},
		}
	default:
		return CoordinateBasis{
			Up:    Axis{Y: 1},
			Front: Axis{Z: 1},
			Coord: Axis{X: 1},
		}
	}
}

// CoordinateAxisCheck verifies that a document's declared axis convention
// matches the convention its authoring application is expected to export.
type CoordinateAxisCheck struct {
	overrides map[fbx.ApplicationName]CoordinateBasis
}

// NewCoordinateAxisCheck creates the check with the built-in policy table.
func NewCoordinateAxisCheck() *CoordinateAxisCheck {
	return &CoordinateAxisCheck{}
}

// Override replaces the expected basis for one application. The built-in
// table itself is never mutated.
func (c *CoordinateAxisCheck) Override(app fbx.ApplicationName, basis CoordinateBasis) {
	if c.overrides == nil {
		c.overrides = make(map[fbx.ApplicationName]CoordinateBasis)
	}
	c.overrides[app] = basis
}

func (c *CoordinateAxisCheck) expectedBasis(app fbx.ApplicationName) CoordinateBasis {
	if basis, ok := c.overrides[app]; ok {
		return basis
	}
	return defaultExpectedBasis(app)
}

// Name returns the check's registry name.
func (c *CoordinateAxisCheck) Name() string { return "coordinate-axis" }

// Description returns a one-line summary for help output.
func (c *CoordinateAxisCheck) Description() string {
	return "declared axis convention matches the authoring application's expected export convention"
}

// Run extracts the declared basis, looks up the expected basis for the
// identified application, and reports zero findings on a match or exactly
// one on a mismatch. A document without a complete basis fails the check
// with ErrMissingAxisData.
func (c *CoordinateAxisCheck) Run(doc *fbx.Document) ([]string, error) {
	actual, ok := fullBasis(doc)
	if !ok {
		return nil, ErrMissingAxisData
	}

	app := fbx.IdentifyApplication(doc)
	expected := c.expectedBasis(app)

	if actual != expected {
		return []string{fmt.Sprintf(
			"File has incorrect coordinate axis. Expected %s actual %s. Application: %s",
			expected.Triplet(), actual.Triplet(), app,
		)}, nil
	}

	return nil, nil
}
