package flowgraph

// Style is a bag of CSS-like properties (fill, stroke, color, stroke-width,
// stroke-dasharray).
type Style map[string]string

func (s Style) Copy() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ResolveStyle merges the properties of the node's class with its inline
// properties. Inline wins. It returns nil when the node has neither.
func (g *Graph) ResolveStyle(id string) Style {
	var resolved Style
	if class, ok := g.ClassAssignments[id]; ok {
		if def, ok := g.ClassDefs[class]; ok && len(def) > 0 {
			resolved = def.Copy()
		}
	}
	if inline, ok := g.NodeStyles[id]; ok && len(inline) > 0 {
		if resolved == nil {
			resolved = make(Style, len(inline))
		}
		for k, v := range inline {
			resolved[k] = v
		}
	}
	return resolved
}
