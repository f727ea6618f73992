package ui

import tea "github.com/charmbracelet/bubbletea"

// navigate leaves the current page, pushes it onto the history and enters
// to. Navigating to the page already shown does nothing.
func (m *Model) navigate(to route) tea.Cmd {
	if to == m.current {
		return nil
	}
	m.leave(m.current)
	m.history = append(m.history, m.current)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.current = to
	return m.enter(to)
}

// back returns to the previous page, if any.
func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		return nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.leave(m.current)
	m.current = prev
	return m.enter(prev)
}

// leave abandons the page's in-flight requests and releases the keyboard.
func (m *Model) leave(r route) {
	m.blurInputs()
	switch r.page {
	case PageHome:
		m.home.Leave()
	case PageSearch:
		m.search.Leave()
	case PageBook:
		m.book.Leave()
	case PageRecommend:
		m.recommend.Leave()
	}
}

// enter starts whatever the page loads on entry.
func (m *Model) enter(r route) tea.Cmd {
	switch r.page {
	case PageHome:
		return m.home.Enter()
	case PageSearch:
		cmd := m.search.Enter()
		if !m.search.Searched() {
			return tea.Batch(cmd, m.focusInput(focusSearch))
		}
		return cmd
	case PageBook:
		m.similarGrid.reset()
		return m.book.Open(r.isbn)
	case PageRecommend:
		return m.recommend.Enter()
	case PageLogs:
		m.logs.follow = true
		return readLogsCmd(m.logPath)
	}
	return nil
}
