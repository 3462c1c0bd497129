package journal

import "strings"

// Join combines a broadcaster prefix with a producer-supplied suffix. An
// empty suffix yields exactly the prefix. Leading and trailing separators on
// the suffix are normalized so "member/update" and "/member/update/" produce
// the same path.
func Join(prefix, suffix string) string {
	suffix = strings.Trim(suffix, "/")
	if suffix == "" {
		return prefix
	}
	if prefix == "/" {
		return "/" + suffix
	}
	return prefix + "/" + suffix
}

// Match reports whether a listener registered at listenerPath receives an
// event published at eventPath. A non-recursive listener matches only the
// exact path. A recursive listener also matches every descendant, on segment
// boundaries: "/al" never matches "/alias/...".
func Match(listenerPath string, recursive bool, eventPath string) bool {
	if listenerPath == eventPath {
		return true
	}
	if !recursive {
		return false
	}
	if listenerPath == "/" {
		return strings.HasPrefix(eventPath, "/")
	}
	return strings.HasPrefix(eventPath, listenerPath+"/")
}

// validPath reports whether p is a well-formed topic path: non-empty,
// rooted, and free of empty segments.
func validPath(p string) bool {
	if p == "/" {
		return true
	}
	if !strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		return false
	}
	return !strings.Contains(p, "//")
}
