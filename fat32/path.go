package fat32

import "strings"

// splitComponents splits a slash-separated path into its non-empty
// components. Leading/trailing slashes are ignored; "." and ".." are not
// given special parent-directory meaning — this filesystem only ever
// resolves literal directory-entry names (see lastComponent/parentPath).
func splitComponents(path string) []string {
	var out []string
	for _, c := range strings.Split(path, "/") {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// lastComponent returns the final path component, or "" for the root.
func lastComponent(path string) string {
	comps := splitComponents(path)
	if len(comps) == 0 {
		return ""
	}
	return comps[len(comps)-1]
}

// parentPath returns the path of path's containing directory, or "" for
// the root.
func parentPath(path string) string {
	comps := splitComponents(path)
	if len(comps) <= 1 {
		return ""
	}
	return "/" + strings.Join(comps[:len(comps)-1], "/")
}
