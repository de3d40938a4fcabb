package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	descriptionColumn = 36
)

type treeNode struct {
	name        string
	description string
	dir         bool
	children    []*treeNode
}

// RenderFileTree renders relative paths as a tree under root.
// files maps relative paths to an optional description shown at a fixed column.
func RenderFileTree(root string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	top := &treeNode{name: root, dir: true}
	for path, desc := range files {
		current := top
		parts := strings.Split(filepath.ToSlash(path), "/")
		for i, part := range parts {
			last := i == len(parts)-1
			var child *treeNode
			for _, c := range current.children {
				if c.name == part {
					child = c
					break
				}
			}
			if child == nil {
				child = &treeNode{name: part, dir: !last}
				current.children = append(current.children, child)
			}
			if last {
				child.description = desc
			}
			current = child
		}
	}
	sortTree(top)

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(top.name + "/"))
	sb.WriteString("\n")
	for i, c := range top.children {
		renderNode(&sb, c, "", i == len(top.children)-1)
	}
	return sb.String()
}

func sortTree(n *treeNode) {
	sort.Slice(n.children, func(i, j int) bool {
		if n.children[i].dir != n.children[j].dir {
			return n.children[i].dir
		}
		return n.children[i].name < n.children[j].name
	})
	for _, c := range n.children {
		sortTree(c)
	}
}

func renderNode(sb *strings.Builder, n *treeNode, prefix string, last bool) {
	connector := treeEdge
	if last {
		connector = treeLast
	}

	name := n.name
	if n.dir {
		name += "/"
	}

	line := prefix + connector + name
	sb.WriteString(StyleTree.Render(prefix + connector))
	sb.WriteString(name)
	if n.description != "" {
		pad := descriptionColumn - len([]rune(line))
		if pad < 2 {
			pad = 2
		}
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(StyleDim.Render(n.description))
	}
	sb.WriteString("\n")

	childPrefix := prefix + treeVert
	if last {
		childPrefix = prefix + treeSpace
	}
	for i, c := range n.children {
		renderNode(sb, c, childPrefix, i == len(n.children)-1)
	}
}
