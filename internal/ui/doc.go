// Package ui is the Bubble Tea front end of bookrecs.
//
// Model is the root tea.Model. It owns one controller per page from the
// pages package and routes their result messages back to them:
//
//	key press ─> Model.handleKey ─> controller method ─> tea.Cmd
//	                                                       │
//	Model.Update <─ pages.*Msg <──── API call on a goroutine┘
//
// Controllers hold all fetch state; this package only keeps presentation
// state such as grid selections, text inputs and the navigation history.
//
// # Pages
//
//   - Home (1): curated trending catalog, and a popular shelf loaded on r.
//   - Search (2): query input, quick-pick suggestions, results grid.
//   - Book: detail, rating distribution, similar books. Opened with enter on
//     any card.
//   - Recommend (3): user mode with three tabs (collaborative filtering, SVD
//     predictions, reading history) and genre mode.
//   - Logs (L): tail of the bookrecs log file, filtered by level.
//
// esc walks back through the history. Leaving a page cancels its in-flight
// requests.
//
// # Files
//
//   - ui.go: Model, Options, Update/View, Run
//   - navigation.go: history and page enter/leave
//   - card.go, grid.go: book cards, badges and the responsive grid
//   - view_*.go: one renderer and key handler per page
//   - logs.go: Logs page
//   - header.go: status bar and command hints
//   - theme.go, bar.go: palettes, lipgloss styles, header painting
//
// The header reads state.StatusStore snapshots on every tick to show whether
// the API is reachable.
package ui
