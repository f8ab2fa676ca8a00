package flowdot

import (
	"fmt"
	"math"
	"strings"

	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
)

// POINTS_PER_INCH converts pixels (treated as points) to the inches dot
// expects for sizes and separations.
const POINTS_PER_INCH = 72.

// MIN_SIZE keeps zero sized boxes acceptable to dot.
const MIN_SIZE = 0.01

// Edge labels are reserved with Courier text, which dot measures with fixed
// glyph metrics: every glyph advances LABEL_GLYPH_ADVANCE em and a line is
// LABEL_LINE_SPACING em tall.
const (
	LABEL_FONT          = "Courier"
	LABEL_GLYPH_ADVANCE = 0.6
	LABEL_LINE_SPACING  = 1.2
	MIN_FONT_SIZE       = 1.
)

// objectMapper assigns dot-safe identifiers to placement nodes so user ids
// never need escaping in the generated source.
type objectMapper struct {
	g *placement.Graph

	nodeToID map[string]string
	idToNode map[string]string
}

func newObjectMapper(g *placement.Graph) *objectMapper {
	m := &objectMapper{
		g:        g,
		nodeToID: make(map[string]string),
		idToNode: make(map[string]string),
	}
	clusters := 0
	for i, n := range g.Nodes {
		var id string
		if m.isCluster(n) {
			id = fmt.Sprintf("cluster_%d", clusters)
			clusters++
		} else {
			id = fmt.Sprintf("n%d", i)
		}
		m.nodeToID[n.ID] = id
		m.idToNode[id] = n.ID
	}
	return m
}

// isCluster is true for containers holding leaves. Empty containers are laid
// out as plain boxes since dot drops empty clusters.
func (m *objectMapper) isCluster(n *placement.Node) bool {
	return n.Container && m.g.HasLeaves(n.ID)
}

// drawn returns n, or the outermost leafless container around it. Only
// those are written to the dot source; what they hold is placed afterwards.
func (m *objectMapper) drawn(n *placement.Node) *placement.Node {
	out := n
	for p := n; p.Parent != ""; {
		parent, ok := m.g.Node(p.Parent)
		if !ok {
			break
		}
		if !m.isCluster(parent) {
			out = parent
		}
		p = parent
	}
	return out
}

func (m *objectMapper) ToID(node string) string {
	return m.nodeToID[node]
}

func (m *objectMapper) ToNode(id string) (string, bool) {
	n, ok := m.idToNode[id]
	return n, ok
}

// firstLeaf descends into a cluster until it reaches a box an edge can attach to.
func (m *objectMapper) firstLeaf(n *placement.Node) *placement.Node {
	for m.isCluster(n) {
		next := n
		for _, c := range m.g.Children(n.ID) {
			if !c.Container || m.g.HasLeaves(c.ID) {
				next = c
				break
			}
		}
		if next == n {
			return n
		}
		n = next
	}
	return n
}

func (m *objectMapper) generateDOT() string {
	b := &strings.Builder{}
	b.WriteString("digraph G {\n")
	fmt.Fprintf(b, "  graph [rankdir=%s, nodesep=%s, ranksep=%s, newrank=true, compound=true, splines=true];\n",
		rankdir(m.g.Rankdir), inches(m.g.NodeSep), inches(m.g.RankSep))
	b.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	b.WriteString("  edge [dir=none];\n")
	m.generateChildren(b, "", 1)
	for _, e := range m.g.Edges {
		m.generateAddEdgeLine(b, e)
	}
	b.WriteString("}\n")
	return b.String()
}

func (m *objectMapper) generateChildren(b *strings.Builder, parent string, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range m.g.Children(parent) {
		if m.isCluster(n) {
			fmt.Fprintf(b, "%ssubgraph %s {\n", indent, m.ToID(n.ID))
			fmt.Fprintf(b, "%s  graph [label=\"\", margin=8];\n", indent)
			m.generateChildren(b, n.ID, depth+1)
			fmt.Fprintf(b, "%s}\n", indent)
			continue
		}
		m.generateAddNodeLine(b, indent, n)
	}
}

func (m *objectMapper) generateAddNodeLine(b *strings.Builder, indent string, n *placement.Node) {
	fmt.Fprintf(b, "%s%s [width=%s, height=%s];\n", indent, m.ToID(n.ID), inches(n.Width), inches(n.Height))
}

func (m *objectMapper) generateAddEdgeLine(b *strings.Builder, e *placement.Edge) {
	src, _ := m.g.Node(e.Src)
	dst, _ := m.g.Node(e.Dst)
	src, dst = m.drawn(src), m.drawn(dst)
	attrs := []string{
		fmt.Sprintf("id=%q", e.ID),
		fmt.Sprintf("weight=%d", e.Weight),
	}
	// dot cannot attach edges to clusters, so they go to the first leaf and
	// get clipped at the cluster border
	if m.isCluster(src) {
		attrs = append(attrs, "ltail="+m.ToID(src.ID))
		src = m.firstLeaf(src)
	}
	if m.isCluster(dst) {
		attrs = append(attrs, "lhead="+m.ToID(dst.ID))
		dst = m.firstLeaf(dst)
	}
	if e.LabelWidth > 0 || e.LabelHeight > 0 {
		attrs = append(attrs, labelAttrs(e.LabelWidth, e.LabelHeight)...)
	}
	fmt.Fprintf(b, "  %s -> %s [%s];\n", m.ToID(src.ID), m.ToID(dst.ID), strings.Join(attrs, ", "))
}

// labelAttrs reserves a label box of at least width x height points. The
// placeholder text is never drawn.
//
// HTML table labels are not an option: go-graphviz's wasm build runs out of
// memory on them once the graph has a back edge.
func labelAttrs(width, height float64) []string {
	size := math.Max(height/LABEL_LINE_SPACING, MIN_FONT_SIZE)
	cols := int(math.Max(1, math.Ceil(width/(size*LABEL_GLYPH_ADVANCE))))
	return []string{
		fmt.Sprintf("label=%q", strings.Repeat("X", cols)),
		fmt.Sprintf("fontname=%q", LABEL_FONT),
		fmt.Sprintf("fontsize=%.2f", size),
	}
}

func inches(px float64) string {
	return fmt.Sprintf("%.4f", math.Max(px/POINTS_PER_INCH, MIN_SIZE))
}

func rankdir(r placement.Rankdir) string {
	switch r {
	case placement.RankdirBT, placement.RankdirLR, placement.RankdirRL:
		return string(r)
	default:
		return string(placement.RankdirTB)
	}
}
