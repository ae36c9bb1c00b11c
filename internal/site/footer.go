package site

// SuppressedFooterPaths lists the paths whose pages render a rich footer of
// their own, so the shared minimal footer is left out.
var SuppressedFooterPaths = []string{
	"/",
	"/solutions",
	"/services",
	"/partners",
	"/investors",
	"/demo",
	"/support",
}

var suppressedFooter = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SuppressedFooterPaths))
	for _, p := range SuppressedFooterPaths {
		m[p] = struct{}{}
	}
	return m
}()

// ShowMinimalFooter reports whether the shell renders the shared minimal footer for path
func ShowMinimalFooter(path string) bool {
	_, suppressed := suppressedFooter[path]
	return !suppressed
}
