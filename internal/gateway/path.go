package gateway

import (
	"path"
	"strings"
)

// Join renders path segments as an absolute node path. The root is "/".
func Join(segments ...string) string {
	var b strings.Builder
	for _, seg := range segments {
		seg = strings.Trim(seg, "/")
		if seg == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(seg)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// Split is the inverse of Join.
func Split(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Clean normalises a node path so that equal paths compare equal.
func Clean(p string) string {
	return Join(Split(p)...)
}

// Parent returns the parent of a node path; the root is its own parent.
func Parent(p string) string {
	return path.Dir(Clean(p))
}

// Base returns the last segment of a node path.
func Base(p string) string {
	segs := Split(p)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
