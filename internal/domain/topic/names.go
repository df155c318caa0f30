package topic

import "strings"

// IsLegalName reports whether name is a well-formed graph resource name:
// non-empty, ASCII, and built from '/'-separated segments of letters,
// digits, and underscores, optionally prefixed with '~' or '/' (§4.5,
// §6 "Name-legality predicate exists and is used for warnings only").
//
// A violation never fails handle construction; callers only log a warning.
func IsLegalName(name string) bool {
	if name == "" {
		return false
	}
	n := name
	if strings.HasPrefix(n, "~") {
		n = n[1:]
	}
	if n == "" {
		return false
	}
	segments := strings.Split(n, "/")
	for idx, seg := range segments {
		if seg == "" {
			// Leading "/" yields an empty first segment; that's legal.
			if idx == 0 {
				continue
			}
			return false
		}
		for i, r := range seg {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9':
				if i == 0 {
					return false
				}
			case r == '_':
			default:
				return false
			}
		}
	}
	return true
}
