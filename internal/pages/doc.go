// Package pages holds the view-state controllers behind each screen.
//
// Every controller follows the same shape. A user action or page entry
// calls a method that marks the affected state.Load as Loading and returns a
// tea.Cmd. The command calls the bookapi.Fetcher on a goroutine and yields a
// typed message tagged with the scope generation it started under. The root
// model routes that message back to the controller's Apply method, which
// drops it if the generation is stale and otherwise ends the operation in
// Succeed, Fail or Abort.
//
// Controllers never call each other. Moving to another page is the UI's job,
// driven by an identifier (ISBN, user id, genre).
//
// Failure presentation differs per page:
//
//   - Search and Recommend set a dismissible Banner, preferring the
//     server's own message over a fixed fallback.
//   - Book renders a not-found state when the detail fetch fails and hides
//     the similar-books section.
//   - Similar books, the genre list, user ratings and the Home popular shelf
//     fail silently; the error is only logged.
package pages
