// Package theme implements the light/dark theme switch and its animated
// transitions.
package theme

// StorageKey names the persisted preference, both as a cookie and in the
// browser's local storage.
const StorageKey = "theme"

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Parse reads a persisted value. Only "light" selects the light theme;
// anything else, absent included, is dark.
func Parse(s string) Theme {
	if s == string(Light) {
		return Light
	}
	return Dark
}

func (t Theme) Other() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// RootClass is the class carried by the document root for t.
func (t Theme) RootClass() string {
	if t == Light {
		return "light"
	}
	return ""
}

// ToggleLabel is the accessible label for the button that switches away from t.
func (t Theme) ToggleLabel() string {
	if t == Light {
		return "Switch to dark mode"
	}
	return "Switch to light mode"
}
