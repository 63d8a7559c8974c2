//go:build darwin

package internal

import (
	"os/exec"
	"strings"
)

// detectSystemLocale returns the system locale string on macOS.
// Terminal overrides in the environment win over the AppleLocale preference.
func detectSystemLocale() string {
	if locale := localeFromEnv("LC_MONETARY", "LC_ALL", "LANG"); locale != "" {
		return locale
	}

	if skipSystemLocale {
		return ""
	}

	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}
	// AppleLocale is already in "sv_SE" form
	return strings.TrimSpace(string(out))
}
