package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"suitekit/internal/domain"
	"suitekit/internal/storage"
)

// ErrorViewer displays run failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer that saves resolved marks to st
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// failureList tracks the resolved state of the failures being browsed
type failureList struct {
	results *domain.TestResultsOutput
	store   storage.Storage
}

func (l *failureList) len() int { return len(l.results.Details) }

func (l *failureList) unresolved() int {
	count := 0
	for _, f := range l.results.Details {
		if !f.Resolved {
			count++
		}
	}
	return count
}

// toggle flips the resolved mark of failure i and persists the report.
func (l *failureList) toggle(i int) error {
	if i < 0 || i >= l.len() {
		return nil
	}
	l.results.Details[i].Resolved = !l.results.Details[i].Resolved
	if l.store == nil {
		return nil
	}
	if err := l.store.SaveOutput(l.results); err != nil {
		return fmt.Errorf("save resolved status: %w", err)
	}
	return nil
}

func (l *failureList) itemText(i int) string {
	failure := l.results.Details[i]
	name := failure.TestName
	if failure.DisplayName != "" && failure.DisplayName != failure.TestName {
		name += " " + failure.DisplayName
	}
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", i+1, tview.Escape(name))
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", i+1, tview.Escape(name))
}

func (l *failureList) header() string {
	return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
		l.len(), l.unresolved())
}

// View displays the failures of results in an interactive TUI
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	failures := &failureList{results: results, store: ev.storage}
	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := 0; i < failures.len(); i++ {
		list.AddItem(failures.itemText(i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	statusView := tview.NewTextView().
		SetDynamicColors(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(failures.header())

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(tview.NewFlex().
			AddItem(detailsView, 0, 1, false).
			AddItem(tview.NewBox(), 2, 0, false), 0, 1, false)

	body := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= failures.len() {
			return
		}
		failure := results.Details[index]
		statsView.SetText(formatFailureStats(failure, index+1))
		detailsView.SetText(formatFailureDetails(failure)).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if err := failures.toggle(index); err != nil {
					statusView.SetText("[red]" + tview.Escape(err.Error()))
				} else {
					statusView.SetText("")
				}
				list.SetItemText(index, failures.itemText(index), "")
				headerView.SetText(failures.header())
				updateDetails()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(statusView, 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatFailureDetails formats a failure using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.TestName))
	fmt.Fprintf(&b, "[cyan]Suite: %s[white]\n", tview.Escape(failure.Suite))
	fmt.Fprintf(&b, "[cyan]Invocation: %s[white]\n", tview.Escape(failure.DisplayName))
	if failure.Arguments != "" {
		fmt.Fprintf(&b, "[yellow]Arguments: %s[white]\n", tview.Escape(failure.Arguments))
	}
	b.WriteString("\n")

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}
	return b.String()
}

// formatFailureStats formats the header line of a failure
func formatFailureStats(failure domain.TestFailure, number int) string {
	testName := failure.TestName
	if testName == "" {
		testName = fmt.Sprintf("Test %d", number)
	}
	status := "[red]open[white]"
	if failure.Resolved {
		status = "[green]resolved[white]"
	}
	return fmt.Sprintf("[cyan]test:[white] [yellow]%s[white]::[yellow]%s[white] #%d (%s)\n",
		tview.Escape(failure.Suite), tview.Escape(testName), failure.Seq, status)
}
