package tui

// BuildInfo holds build-time metadata shown in the info dialog.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}
