package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string // behind everything, also the text color on pills
	Surface    string // header and command bar
	Raised     string // chips and other inline controls

	Selection     string
	SelectionText string
	Border        string // card and input borders
	BorderFocus   string // selected card, focused input

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// BadgeColors maps a badge kind (see card.go) to its pill color.
	BadgeColors map[string]string
}

// badgePalette builds a BadgeColors map in badge display order.
func badgePalette(user, rating, count, match, score, predicted, popular string) map[string]string {
	return map[string]string{
		badgeUser:      user,
		badgeRating:    rating,
		badgeCount:     count,
		badgeMatch:     match,
		badgeScore:     score,
		badgePredicted: predicted,
		badgePopular:   popular,
	}
}

// themeList is also the cycle order for the theme key.
var themeList = []Theme{
	{
		// github.com/EdenEast/nightfox.nvim
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", Raised: "#212e3f",
		Selection: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		BadgeColors: badgePalette("#dbc074", "#dbc074", "#63cdcf", "#719cd6", "#9d79d6", "#81b29a", "#f4a261"),
	},
	{
		// github.com/rebelot/kanagawa.nvim
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", Raised: "#2A2A37",
		Selection: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		BadgeColors: badgePalette("#E6C384", "#E6C384", "#7FB4CA", "#7E9CD8", "#957FB8", "#98BB6C", "#FFA066"),
	},
	{
		// Tailwind slate and sky scales
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", Raised: "#1e293b",
		Selection: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		BadgeColors: badgePalette("#eab308", "#f59e0b", "#3b82f6", "#38bdf8", "#a855f7", "#22c55e", "#f97316"),
	},
}

// GetTheme returns the named theme, or Nightfox when name is unknown.
func GetTheme(name string) Theme {
	for _, t := range themeList {
		if t.Name == name {
			return t
		}
	}
	return themeList[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themeList {
		if t.Name == current {
			return themeList[(i+1)%len(themeList)].Name
		}
	}
	return themeList[0].Name
}

// ThemeNames returns the theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, 0, len(themeList))
	for _, t := range themeList {
		names = append(names, t.Name)
	}
	return names
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header       lipgloss.Style
	Logo         lipgloss.Style
	Selected     lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Banner       lipgloss.Style

	badgeColors map[string]string
	pillText    string
	pillDefault string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func cardBox(border lipgloss.Border, color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1)
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
		Logo: fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).
			Background(lipgloss.Color(t.Selection)),
		Card:         cardBox(lipgloss.RoundedBorder(), t.Border),
		CardSelected: cardBox(lipgloss.ThickBorder(), t.BorderFocus),
		Banner: fg(t.Background).
			Background(lipgloss.Color(t.Danger)).
			Bold(true).
			Padding(0, 1),

		badgeColors: t.BadgeColors,
		pillText:    t.Background,
		pillDefault: t.Muted,
	}
}

// BadgeStyle returns the pill style for a badge kind.
func (s Styles) BadgeStyle(kind string) lipgloss.Style {
	color, ok := s.badgeColors[kind]
	if !ok || color == "" {
		color = s.pillDefault
	}
	return fg(s.pillText).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// OnBackground returns s with every text style painted on color, for use
// inside the header and command bar.
func (s Styles) OnBackground(color string) Styles {
	bg := lipgloss.Color(color)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText,
		&s.Logo, &s.Selected,
	} {
		*st = st.Background(bg)
	}
	return s
}
