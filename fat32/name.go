package fat32

import (
	"strings"

	"github.com/quietgrove/mkdisk/dderrors"
)

// splitStemExt splits a single path component into an 8.3 stem and
// extension on the rightmost '.'. "." and ".." never split: they are
// treated as the literal whole name with no extension. A name starting
// with '.' that contains no further '.' is likewise treated as a whole
// stem with no extension.
func splitStemExt(name string) (stem, ext string) {
	if name == "." || name == ".." {
		return name, ""
	}
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// normalizedNameOf splits component into its 8.3 stem and extension,
// validates both are ASCII and the stem is non-empty, and truncates each
// to their on-disk width. It does not pad or fold case: callers compare
// against the space-stripped on-disk form directly.
func normalizedNameOf(component string) (stem, ext string, err error) {
	rawStem, rawExt := splitStemExt(component)
	if rawStem == "" {
		return "", "", dderrors.ErrInvalidPath.WithMessage("missing stem: " + component)
	}
	if !isASCII(rawStem) || !isASCII(rawExt) {
		return "", "", dderrors.ErrInvalidPath.WithMessage("non-ASCII name: " + component)
	}

	if len(rawStem) > 8 {
		rawStem = rawStem[:8]
	}
	if len(rawExt) > 3 {
		rawExt = rawExt[:3]
	}
	return rawStem, rawExt, nil
}
