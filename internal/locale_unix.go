//go:build !windows && !darwin

package internal

// detectSystemLocale returns the system locale string on Unix-like systems.
// LC_MONETARY is the most specific for currency, then LC_ALL and LANG.
func detectSystemLocale() string {
	return localeFromEnv("LC_MONETARY", "LC_ALL", "LANG")
}
