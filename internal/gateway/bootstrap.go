package gateway

import (
	"fmt"

	"github.com/atomicstack/zkbrowse/internal/logging/events"
)

// DefaultRoot is the node seeded on first run.
const DefaultRoot = "/term"

type seedNode struct {
	name  string
	value string
}

var seedNodes = []seedNode{
	{"", "Valeur de base"},
	{"data1", "Valeur de noeud1"},
	{"data2", "Valeur de noeud2"},
}

// Bootstrap seeds root and two children with placeholder values when root
// does not exist yet. It reports whether anything was created.
func Bootstrap(s Store, root string) (bool, error) {
	root = Clean(root)
	if root == "/" {
		return false, fmt.Errorf("bootstrap: refusing to seed the root node")
	}
	exists, err := s.Exists(root)
	if err != nil {
		return false, fmt.Errorf("bootstrap: %w", err)
	}
	if exists {
		events.Gateway.Bootstrap(root, false)
		return false, nil
	}
	for _, node := range seedNodes {
		target := Join(root, node.name)
		if err := s.Create(target, []byte(node.value)); err != nil {
			return false, fmt.Errorf("bootstrap: %w", err)
		}
		events.Gateway.Create(target, len(node.value))
	}
	events.Gateway.Bootstrap(root, true)
	return true, nil
}
