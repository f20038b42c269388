package fbx

import "strings"

// ApplicationName is the authoring tool a document was exported from, as a
// closed enumeration. Tools the lint policy does not single out all map to
// AppUnknown's default handling.
type ApplicationName int

const (
	AppUnknown ApplicationName = iota
	AppMax
	AppBlender
	AppMaya
	AppMotionBuilder
)

func (a ApplicationName) String() string {
	switch a {
	case AppMax:
		return "Max"
	case AppBlender:
		return "Blender"
	case AppMaya:
		return "Maya"
	case AppMotionBuilder:
		return "MotionBuilder"
	}
	return "Unknown"
}

// sceneInfoApplicationKeys are the SceneInfo properties that name the
// exporting tool, in the order they are trusted.
var sceneInfoApplicationKeys = []string{
	"Original|ApplicationName",
	"LastSaved|ApplicationName",
}

// IdentifyApplication infers which authoring tool produced the document.
// It prefers the SceneInfo application-name properties and falls back to
// the top-level Creator string.
func IdentifyApplication(doc *Document) ApplicationName {
	if si := doc.SceneInfo(); si != nil {
		for _, key := range sceneInfoApplicationKeys {
			prop := si.Property(key)
			if prop == nil {
				continue
			}
			attr, ok := prop.Value(0)
			if !ok {
				continue
			}
			name, ok := attr.Str()
			if !ok {
				continue
			}
			if app := classifyApplication(name); app != AppUnknown {
				return app
			}
		}
	}
	return classifyApplication(doc.Creator())
}

func classifyApplication(name string) ApplicationName {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "3ds max") || strings.Contains(lower, "3dsmax"):
		return AppMax
	case strings.Contains(lower, "blender"):
		return AppBlender
	case strings.Contains(lower, "maya"):
		return AppMaya
	case strings.Contains(lower, "motionbuilder"):
		return AppMotionBuilder
	}
	return AppUnknown
}
