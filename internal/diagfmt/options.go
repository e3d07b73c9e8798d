package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8     // строки контекста до и после основной
	PathMode  PathMode //
	Width     uint8    // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

func formatPath(mode PathMode, path func(mode, base string) string, base string) string {
	switch mode {
	case PathModeAbsolute:
		return path("absolute", "")
	case PathModeRelative:
		return path("relative", base)
	case PathModeBasename:
		return path("basename", "")
	default:
		return path("auto", "")
	}
}
