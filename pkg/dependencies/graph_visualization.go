package dependencies

import (
	"fmt"
	"io"
	"strings"
)

// CytoscapeNode represents a node in Cytoscape.js format
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData contains node data for Cytoscape.js
type CytoscapeNodeData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
	Type    string `json:"type"` // "root" or "dependency"
}

// CytoscapeEdge represents an edge in Cytoscape.js format
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains edge data for Cytoscape.js
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"` // "direct" or "transitive"
}

// CytoscapeGraph represents the complete graph in Cytoscape.js format
type CytoscapeGraph struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// ToCytoscape converts the graph reachable from root into Cytoscape.js elements. Nodes are
// identified by manifest path so two installs of the same version stay distinct.
func ToCytoscape(root *Node) CytoscapeGraph {
	graph := CytoscapeGraph{
		Nodes: make([]CytoscapeNode, 0),
		Edges: make([]CytoscapeEdge, 0),
	}

	for visit := range Traverse(root, TraverseOptions{}) {
		nodeType := "dependency"
		if visit.Node == root {
			nodeType = "root"
		}
		graph.Nodes = append(graph.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:      visit.Paths.ManifestPath,
				Name:    visit.Manifest.Name,
				Version: visit.Manifest.Version,
				Path:    visit.Paths.ManifestPath,
				Type:    nodeType,
			},
		})

		edgeType := "direct"
		if visit.Node != root {
			edgeType = "transitive"
		}
		for _, dep := range visit.Dependencies.All() {
			source := visit.Paths.ManifestPath
			target := dep.Paths.ManifestPath
			graph.Edges = append(graph.Edges, CytoscapeEdge{
				Data: CytoscapeEdgeData{
					ID:     source + "->" + target,
					Source: source,
					Target: target,
					Type:   edgeType,
				},
			})
		}
	}

	return graph
}

// WriteDOT renders the graph reachable from root in Graphviz DOT format
func WriteDOT(w io.Writer, root *Node) error {
	ids := make(map[*Node]string)
	var b strings.Builder

	b.WriteString("digraph dependencies {\n")
	for visit := range Traverse(root, TraverseOptions{}) {
		id := fmt.Sprintf("n%d", len(ids))
		ids[visit.Node] = id
		fmt.Fprintf(&b, "  %s [label=%q];\n", id, visit.Key())
	}
	for visit := range Traverse(root, TraverseOptions{}) {
		for _, dep := range visit.Dependencies.All() {
			fmt.Fprintf(&b, "  %s -> %s;\n", ids[visit.Node], ids[dep])
		}
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTree prints the traversal as an indented tree. With allPaths every import path is
// printed; otherwise each package appears once.
func WriteTree(w io.Writer, root *Node, allPaths bool) error {
	for visit := range Traverse(root, TraverseOptions{TraverseAllPaths: allPaths}) {
		indent := strings.Repeat("  ", len(visit.ImportPath)-1)
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, visit.Key()); err != nil {
			return err
		}
	}
	return nil
}
