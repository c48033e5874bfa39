package asset

import (
	"sort"
	"strings"
)

// BuildFolderTree returns the root ("") plus every prefix of every folder,
// deduplicated and sorted. Empty path segments are ignored.
func BuildFolderTree(folders []string) []string {
	seen := map[string]struct{}{"": {}}

	for _, folder := range folders {
		var parts []string
		for _, p := range strings.Split(folder, "/") {
			if p == "" {
				continue
			}
			parts = append(parts, p)
			seen[strings.Join(parts, "/")] = struct{}{}
		}
	}

	tree := make([]string, 0, len(seen))
	for f := range seen {
		tree = append(tree, f)
	}
	sort.Strings(tree)
	return tree
}
