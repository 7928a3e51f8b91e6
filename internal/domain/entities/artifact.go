package entities

// Artifact is one component's output for one locale.
type Artifact struct {
	Component   string
	Locale      Locale
	PathSegment string
	Namespace   string
	Translation *Tree
	// Help is the raw help markup; empty means no markup artifact.
	Help string
}
