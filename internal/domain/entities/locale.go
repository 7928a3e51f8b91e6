package entities

// Locale identifies one supported translation locale and the folder its
// artifacts are written to.
type Locale struct {
	ID     string
	Folder string
}

// Mappings holds the naming tables applied while emitting artifacts. Zero
// values fall back to identity mappings.
type Mappings struct {
	Locales        []string
	LocaleFolders  map[string]string
	ComponentPaths map[string]string
	Namespaces     map[string]string
	HelpKey        string
}

// Locale returns the locale for id with its folder override applied.
func (m Mappings) Locale(id string) Locale {
	folder := id
	if f, ok := m.LocaleFolders[id]; ok && f != "" {
		folder = f
	}
	return Locale{ID: id, Folder: folder}
}

// SupportedLocales resolves every configured locale identifier.
func (m Mappings) SupportedLocales() []Locale {
	out := make([]Locale, 0, len(m.Locales))
	for _, id := range m.Locales {
		out = append(out, m.Locale(id))
	}
	return out
}

// PathSegment returns the output folder segment for a component.
func (m Mappings) PathSegment(component string) string {
	if seg, ok := m.ComponentPaths[component]; ok && seg != "" {
		return seg
	}
	return component
}

// Namespace returns the help namespace for a component. ok is false when
// the table has no entry and the component key was used instead.
func (m Mappings) Namespace(component string) (string, bool) {
	if ns, ok := m.Namespaces[component]; ok && ns != "" {
		return ns, true
	}
	return component, false
}
