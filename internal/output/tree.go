package output

import (
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is where file annotations start.
	descriptionColumn = 40
)

// TreeNode is one directory or file in a rendered tree.
type TreeNode struct {
	Name        string
	Description string
	IsDir       bool
	Children    []*TreeNode
}

// RenderFileTree renders repo-relative paths as a tree under rootName.
// files maps each path to an optional annotation (a size, a status) shown
// in an aligned column.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &TreeNode{Name: rootName, IsDir: true}
	for path, desc := range files {
		insertPath(root, strings.Split(path, "/"), desc)
	}
	sortTree(root)

	var sb strings.Builder
	renderNode(&sb, GetStyles(), root, "", true, true)
	return sb.String()
}

// RenderPathTree renders paths without annotations.
func RenderPathTree(rootName string, paths []string) string {
	files := make(map[string]string, len(paths))
	for _, p := range paths {
		files[p] = ""
	}
	return RenderFileTree(rootName, files)
}

func insertPath(root *TreeNode, parts []string, desc string) {
	current := root
	for i, part := range parts {
		isLast := i == len(parts)-1

		var child *TreeNode
		for _, c := range current.Children {
			if c.Name == part && c.IsDir == !isLast {
				child = c
				break
			}
		}
		if child == nil {
			child = &TreeNode{Name: part, IsDir: !isLast}
			current.Children = append(current.Children, child)
		}
		if isLast {
			child.Description = desc
		}
		current = child
	}
}

// sortTree orders directories before files, then by name.
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		sortTree(child)
	}
}

func renderNode(sb *strings.Builder, styles *Styles, node *TreeNode, prefix string, isRoot, isLast bool) {
	if isRoot {
		sb.WriteString(styles.Bold.Render(node.Name + "/"))
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		name := node.Name
		if node.IsDir {
			name += "/"
		}
		line := prefix + connector + name

		if node.Description != "" {
			padding := descriptionColumn - len([]rune(line))
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding) + styles.Muted.Render(node.Description)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for i, child := range node.Children {
		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}
		renderNode(sb, styles, child, childPrefix, false, i == len(node.Children)-1)
	}
}
