package checks

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/fbxlint/internal/fbx"
)

// intProp builds a Properties70 "P" entry holding one int32 value.
func intProp(name string, value int32) *fbx.Node {
	return &fbx.Node{
		Name: "P",
		Attributes: []fbx.Attribute{
			fbx.StringAttr(name),
			fbx.StringAttr("int"),
			fbx.StringAttr("Integer"),
			fbx.StringAttr(""),
			fbx.Int32Attr(value),
		},
	}
}

// doubleProp builds a "P" entry holding one float64 value, for wrong-tag cases.
func doubleProp(name string, value float64) *fbx.Node {
	return &fbx.Node{
		Name: "P",
		Attributes: []fbx.Attribute{
			fbx.StringAttr(name),
			fbx.StringAttr("double"),
			fbx.StringAttr("Number"),
			fbx.StringAttr(""),
			fbx.Float64Attr(value),
		},
	}
}

func docWithGlobalSettings(props ...*fbx.Node) *fbx.Document {
	return &fbx.Document{
		Format: fbx.FormatASCII,
		Roots: []*fbx.Node{
			{
				Name: "GlobalSettings",
				Children: []*fbx.Node{
					{Name: "Properties70", Children: props},
				},
			},
		},
	}
}

func withCreator(doc *fbx.Document, creator string) *fbx.Document {
	doc.Roots = append(doc.Roots, &fbx.Node{
		Name:       "Creator",
		Attributes: []fbx.Attribute{fbx.StringAttr(creator)},
	})
	return doc
}

// axisProps is the standard six-property convention block.
func axisProps(up, upSign, front, frontSign, coord, coordSign int32) []*fbx.Node {
	return []*fbx.Node{
		intProp("UpAxis", up),
		intProp("UpAxisSign", upSign),
		intProp("FrontAxis", front),
		intProp("FrontAxisSign", frontSign),
		intProp("CoordAxis", coord),
		intProp("CoordAxisSign", coordSign),
	}
}

func TestAxisLetterRoundTrip(t *testing.T) {
	all := []Axis{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	seen := make(map[string]bool)
	for _, axis := range all {
		letter := axis.Letter()
		if seen[letter] {
			t.Errorf("duplicate letter %q", letter)
		}
		seen[letter] = true

		parsed, err := ParseAxisLetter(letter)
		if err != nil {
			t.Fatalf("ParseAxisLetter(%q): %v", letter, err)
		}
		if parsed != axis {
			t.Errorf("round trip of %q: got %+v, want %+v", letter, parsed, axis)
		}
	}
}

func TestParseAxisLetter_RejectsEverythingElse(t *testing.T) {
	for _, s := range []string{"", "X", "+x", "-W", "+XY", "+ X", "Z"} {
		if _, err := ParseAxisLetter(s); err == nil {
			t.Errorf("ParseAxisLetter(%q): expected error", s)
		}
	}
}

func TestAxisLetter_PanicsOnInvalidAxis(t *testing.T) {
	invalid := []Axis{
		{},                 // all zero
		{X: 1, Y: 1},       // two components
		{Y: 2},             // non-unit magnitude
		{X: -1, Z: -1},     // two components, negative
		{X: 1, Y: 1, Z: 1}, // all set
	}
	for _, axis := range invalid {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Letter() on %+v: expected panic", axis)
				}
			}()
			_ = axis.Letter()
		}()
	}
}

func TestExtractAxis_MissingSignIsAbsence(t *testing.T) {
	doc := docWithGlobalSettings(intProp("UpAxis", 1)) // no UpAxisSign
	gs := doc.GlobalSettings()
	if gs == nil {
		t.Fatal("expected global settings")
	}
	if _, ok := extractAxis(gs, "UpAxis"); ok {
		t.Error("expected absence when the sign property is missing")
	}
}

func TestExtractAxis_UnrecognizedIndexIsAbsence(t *testing.T) {
	doc := docWithGlobalSettings(intProp("UpAxis", 3), intProp("UpAxisSign", 1))
	gs := doc.GlobalSettings()
	if _, ok := extractAxis(gs, "UpAxis"); ok {
		t.Error("expected absence for axis index 3")
	}
}

func TestExtractAxis_WrongValueTagIsAbsence(t *testing.T) {
	doc := docWithGlobalSettings(doubleProp("UpAxis", 1), intProp("UpAxisSign", 1))
	gs := doc.GlobalSettings()
	if _, ok := extractAxis(gs, "UpAxis"); ok {
		t.Error("expected absence for a non-int32 axis value")
	}
}

func TestExtractAxis_SignIsTruncatedNotValidated(t *testing.T) {
	// 257 narrows to int8(1); the check accepts the narrowed value verbatim.
	doc := docWithGlobalSettings(intProp("UpAxis", 1), intProp("UpAxisSign", 257))
	gs := doc.GlobalSettings()
	axis, ok := extractAxis(gs, "UpAxis")
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if (axis != Axis{Y: 1}) {
		t.Errorf("got %+v, want {Y:1}", axis)
	}

	// A sign of 2 is out of the unit range but still accepted as-is.
	doc = docWithGlobalSettings(intProp("FrontAxis", 2), intProp("FrontAxisSign", 2))
	gs = doc.GlobalSettings()
	axis, ok = extractAxis(gs, "FrontAxis")
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if (axis != Axis{Z: 2}) {
		t.Errorf("got %+v, want {Z:2}", axis)
	}
}

func TestFullBasis_NoPartialBasis(t *testing.T) {
	// UpAxis and FrontAxis are complete, CoordAxis is missing entirely.
	doc := docWithGlobalSettings(
		intProp("UpAxis", 1), intProp("UpAxisSign", 1),
		intProp("FrontAxis", 2), intProp("FrontAxisSign", 1),
	)
	if _, ok := fullBasis(doc); ok {
		t.Error("expected absence when one of the three axes is missing")
	}
}

func TestFullBasis_NoGlobalSettings(t *testing.T) {
	doc := &fbx.Document{Format: fbx.FormatASCII}
	if _, ok := fullBasis(doc); ok {
		t.Error("expected absence without global settings")
	}
}

func TestExpectedBasis_TotalAndPure(t *testing.T) {
	apps := []fbx.ApplicationName{
		fbx.AppUnknown, fbx.AppMax, fbx.AppBlender, fbx.AppMaya, fbx.AppMotionBuilder,
	}
	for _, app := range apps {
		first := defaultExpectedBasis(app)
		second := defaultExpectedBasis(app)
		if first != second {
			t.Errorf("%s: lookup is not pure", app)
		}
		// Every entry renders; an invalid table entry would panic here.
		_ = first.Triplet()
	}

	defaultBasis := CoordinateBasis{Up: Axis{Y: 1}, Front: Axis{Z: 1}, Coord: Axis{X: 1}}
	for _, app := range []fbx.ApplicationName{fbx.AppUnknown, fbx.AppMaya, fbx.AppMotionBuilder} {
		if got := defaultExpectedBasis(app); got != defaultBasis {
			t.Errorf("%s: got %s, want default %s", app, got.Triplet(), defaultBasis.Triplet())
		}
	}

	maxBasis := CoordinateBasis{Up: Axis{Z: 1}, Front: Axis{Y: -1}, Coord: Axis{X: 1}}
	if got := defaultExpectedBasis(fbx.AppMax); got != maxBasis {
		t.Errorf("Max: got %s, want %s", got.Triplet(), maxBasis.Triplet())
	}

	blenderBasis := CoordinateBasis{Up: Axis{Z: 1}, Front: Axis{Y: 1}, Coord: Axis{X: -1}}
	if got := defaultExpectedBasis(fbx.AppBlender); got != blenderBasis {
		t.Errorf("Blender: got %s, want %s", got.Triplet(), blenderBasis.Triplet())
	}
}

func TestRun_PassWithDefaultConvention(t *testing.T) {
	// Scenario A: engine-native convention, unknown application.
	doc := docWithGlobalSettings(axisProps(1, 1, 2, 1, 0, 1)...)

	findings, err := NewCoordinateAxisCheck().Run(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestRun_MismatchForMax(t *testing.T) {
	// Scenario B: same document, but authored by 3DS Max.
	doc := withCreator(
		docWithGlobalSettings(axisProps(1, 1, 2, 1, 0, 1)...),
		"FBX SDK/FBX Plugins version 2020.0 build=3ds Max",
	)

	findings, err := NewCoordinateAxisCheck().Run(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected exactly one finding, got %d: %v", len(findings), findings)
	}

	want := "Expected Front:-Y,Up:+Z,Coord:+X actual Front:+Z,Up:+Y,Coord:+X"
	if !strings.Contains(findings[0], want) {
		t.Errorf("finding %q does not contain %q", findings[0], want)
	}
	if !strings.Contains(findings[0], "Max") {
		t.Errorf("finding %q does not name the application", findings[0])
	}
}

func TestRun_MissingAxisData(t *testing.T) {
	// Scenario C: global settings present, CoordAxis absent.
	doc := docWithGlobalSettings(
		intProp("UpAxis", 1), intProp("UpAxisSign", 1),
		intProp("FrontAxis", 2), intProp("FrontAxisSign", 1),
		intProp("CoordAxisSign", 1),
	)

	findings, err := NewCoordinateAxisCheck().Run(doc)
	if !errors.Is(err, ErrMissingAxisData) {
		t.Fatalf("expected ErrMissingAxisData, got %v", err)
	}
	if findings != nil {
		t.Errorf("expected no findings on error, got %v", findings)
	}
}

func TestRun_BlenderCorrectedExportPasses(t *testing.T) {
	// Scenario D: Blender exporting the 180°-flipped convention.
	doc := withCreator(
		docWithGlobalSettings(axisProps(2, 1, 1, 1, 0, -1)...),
		"Blender (stable FBX IO) - 3.6.0",
	)

	findings, err := NewCoordinateAxisCheck().Run(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestRun_BlenderNativeConventionFails(t *testing.T) {
	// Blender's literal native convention must be flagged: importing it
	// unmodified triggers the engine rotation bug.
	doc := withCreator(
		docWithGlobalSettings(axisProps(2, 1, 1, -1, 0, 1)...),
		"Blender (stable FBX IO) - 3.6.0",
	)

	findings, err := NewCoordinateAxisCheck().Run(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %d: %v", len(findings), findings)
	}
	if !strings.Contains(findings[0], "Expected Front:+Y,Up:+Z,Coord:-X") {
		t.Errorf("unexpected finding: %q", findings[0])
	}
}

func TestRun_OverrideReplacesExpectedBasis(t *testing.T) {
	doc := docWithGlobalSettings(axisProps(2, 1, 1, 1, 0, 1)...)

	check := NewCoordinateAxisCheck()
	check.Override(fbx.AppUnknown, CoordinateBasis{
		Up:    Axis{Z: 1},
		Front: Axis{Y: 1},
		Coord: Axis{X: 1},
	})

	findings, err := check.Run(doc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected override to make the document pass, got %v", findings)
	}
}

func TestTripletOrderIsFrontUpCoord(t *testing.T) {
	basis := CoordinateBasis{Up: Axis{Y: 1}, Front: Axis{Z: 1}, Coord: Axis{X: 1}}
	if got := basis.Triplet(); got != "Front:+Z,Up:+Y,Coord:+X" {
		t.Errorf("got %q", got)
	}
}
