package internal

import "os"

// skipSystemLocale can be set to true in tests to skip OS-level locale detection
var skipSystemLocale = false

// localeFromEnv returns the first usable locale among the given environment variables.
// "C" and "POSIX" carry no region and are ignored.
func localeFromEnv(vars ...string) string {
	for _, envVar := range vars {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
