package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	require.Equal(t, []string{"Nightfox", "Kanagawa", "Slate"}, ThemeNames())
}

func TestNextTheme(t *testing.T) {
	require.Equal(t, "Kanagawa", NextTheme("Nightfox"))
	require.Equal(t, "Slate", NextTheme("Kanagawa"))
	require.Equal(t, "Nightfox", NextTheme("Slate"))
	require.Equal(t, "Nightfox", NextTheme("Unknown"))
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	require.Equal(t, "Slate", GetTheme("Slate").Name)
	require.Equal(t, "Nightfox", GetTheme("Dracula").Name)
	require.Equal(t, "Nightfox", GetTheme("").Name)
}

func TestThemesColorEveryBadge(t *testing.T) {
	kinds := []string{badgeMatch, badgeScore, badgePredicted, badgePopular, badgeRating, badgeCount, badgeUser}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, kind := range kinds {
			require.NotEmpty(t, th.BadgeColors[kind], "%s has no color for %s", name, kind)
		}
	}
}
