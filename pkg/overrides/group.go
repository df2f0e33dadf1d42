package overrides

import (
	"path/filepath"

	"github.com/arthur-debert/apphide/pkg/paths"
)

// Group holds all descriptors sharing one file name, highest precedence first
type Group struct {
	Filename string

	// Paths in discovery order across roots.
	Paths []string

	// UserPaths and SystemPaths partition Paths, each keeping its order.
	UserPaths   []string
	SystemPaths []string
}

// NewGroup partitions paths into the user layer (below dataHome) and the
// system layer
func NewGroup(filename string, ordered []string, dataHome string) *Group {
	g := &Group{Filename: filename}
	for _, p := range ordered {
		g.Paths = append(g.Paths, p)
		if paths.IsWithin(dataHome, p) {
			g.UserPaths = append(g.UserPaths, p)
		} else {
			g.SystemPaths = append(g.SystemPaths, p)
		}
	}
	return g
}

// Top returns the highest-precedence path
func (g *Group) Top() string {
	if len(g.Paths) == 0 {
		return ""
	}
	return g.Paths[0]
}

// Contains reports whether path is part of the group
func (g *Group) Contains(path string) bool {
	return indexOf(g.Paths, path) >= 0
}

// addUser places a newly written user-layer file in front of the group
func (g *Group) addUser(path string) {
	if g.Contains(path) {
		return
	}
	g.Paths = append([]string{path}, g.Paths...)
	g.UserPaths = append([]string{path}, g.UserPaths...)
}

// remove drops a deleted file from the group
func (g *Group) remove(path string) {
	g.Paths = without(g.Paths, path)
	g.UserPaths = without(g.UserPaths, path)
	g.SystemPaths = without(g.SystemPaths, path)
}

func indexOf(list []string, path string) int {
	clean := filepath.Clean(path)
	for i, p := range list {
		if filepath.Clean(p) == clean {
			return i
		}
	}
	return -1
}

func without(list []string, path string) []string {
	i := indexOf(list, path)
	if i < 0 {
		return list
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
