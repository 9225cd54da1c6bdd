package appstate

import "log/slog"

// KeyTheme holds the persisted viewer theme. It never expires and survives logout.
const KeyTheme = "pdfViewerTheme"

const (
	themeDark  = "dark"
	themeLight = "light"
)

type Theme struct {
	kv *KV
}

func NewTheme(kv *KV) *Theme {
	return &Theme{kv: kv}
}

// DarkMode reports the persisted preference. Anything but "dark" is light.
func (t *Theme) DarkMode() bool {
	value, _, err := t.kv.Get(KeyTheme)
	if err != nil {
		slog.Warn("theme read", "error", err)
		return false
	}
	return value == themeDark
}

func (t *Theme) SetDarkMode(dark bool) error {
	value := themeLight
	if dark {
		value = themeDark
	}
	return t.kv.Set(KeyTheme, value)
}
