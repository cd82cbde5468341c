package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pafinder/internal/catalog"
	"pafinder/internal/config"
	"pafinder/internal/program"
	"pafinder/internal/session"
)

func fixturePrograms() []program.Program {
	return program.NormalizeAll([]program.RawRow{
		{program.ColumnName: "Acme PA", program.ColumnState: "TX", program.ColumnGRERequirement: "Required", program.ColumnGPARequirement: "3.0", program.ColumnStartDate: "6/1/2026", program.ColumnTuition: "$90,000"},
		{program.ColumnName: "Beta PA", program.ColumnState: "CA", program.ColumnGRERequirement: "Not Required", program.ColumnGPARequirement: "3.0"},
		{program.ColumnName: "Gamma PA", program.ColumnState: "TX", program.ColumnGRERequirement: "GRE Required", program.ColumnPACATRequirement: "Required", program.ColumnGPARequirement: "3.2"},
		{program.ColumnName: "Delta PA", program.ColumnState: "NY", program.ColumnGRERequirement: "Not Required"},
		{program.ColumnName: "Epsilon PA", program.ColumnState: "NY"},
	})
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	cfg.UI.GlamourStyle = "notty"
	return cfg
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	records := fixturePrograms()
	load := func(context.Context) ([]program.Program, error) { return records, nil }
	return New(context.Background(), testConfig(t), load, nil)
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	return send(t, m, loadedMsg{records: fixturePrograms()})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func TestModel_LoadingView(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("expected Init to start the fetch")
	}
	if !strings.Contains(m.View(), "Loading programs") {
		t.Errorf("expected loading view, got:\n%s", m.View())
	}

	// keys other than quit do nothing while loading
	m = press(t, m, "space", "c")
	if m.Session().Status() != session.StatusLoading {
		t.Errorf("expected to still be loading, got %v", m.Session().Status())
	}
}

func TestModel_FetchCommandDeliversRecords(t *testing.T) {
	m := newTestModel(t)
	msg := m.fetch()()
	loaded, ok := msg.(loadedMsg)
	if !ok {
		t.Fatalf("expected loadedMsg, got %T", msg)
	}
	if len(loaded.records) != 5 || loaded.err != nil {
		t.Fatalf("unexpected fetch result: %d records, err %v", len(loaded.records), loaded.err)
	}
}

func TestModel_FailureAndRetry(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, loadedMsg{err: errors.New("load data source: unexpected status 503")})

	view := m.View()
	if !strings.Contains(view, "Could not load programs") {
		t.Fatalf("expected error panel, got:\n%s", view)
	}
	if !strings.Contains(view, "unexpected status 503") {
		t.Errorf("expected the load error in the panel")
	}
	if !strings.Contains(view, "Press r to retry") {
		t.Errorf("expected retry hint")
	}

	next, cmd := m.Update(keyMsg("r"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected retry to issue a fetch")
	}
	if m.Session().Status() != session.StatusLoading {
		t.Fatalf("expected loading after retry, got %v", m.Session().Status())
	}

	m = send(t, m, loadedMsg{records: fixturePrograms()})
	if m.Session().Status() != session.StatusReady {
		t.Fatalf("expected ready after successful retry, got %v", m.Session().Status())
	}
	if !strings.Contains(m.View(), "Acme PA") {
		t.Errorf("expected list after retry")
	}
}

func TestModel_ListView(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	for _, want := range []string{"Acme PA", "Epsilon PA", "5 programs", "0 programs selected (max 3)", "[e] Download CSV", "State: Any", "No GRE Required"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in list view", want)
		}
	}
	if strings.Contains(view, "[x] Clear") {
		t.Errorf("clear should only show with a selection")
	}
}

func TestModel_SelectAndCompare(t *testing.T) {
	m := loadedModel(t)

	m = press(t, m, "space")
	if got := m.Session().Selected(); len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected [1] selected, got %v", got)
	}
	if !strings.Contains(m.View(), "1 programs selected (max 3)") {
		t.Errorf("expected selection count in controls bar")
	}

	// one selection: compare is inert
	m = press(t, m, "c")
	if m.page != pageList {
		t.Fatalf("compare with one selection should be inert")
	}

	m = press(t, m, "down", "space", "c")
	if m.page != pageCompare {
		t.Fatalf("expected compare page, got %v", m.page)
	}
	view := m.View()
	for _, want := range []string{"Compare Programs", "Feature", "Acme PA", "Beta PA", "Not Required", "Distance Learning"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in comparison view", want)
		}
	}

	m = press(t, m, "esc")
	if m.page != pageList {
		t.Fatalf("expected esc to return to the list")
	}
	if m.Session().SelectedCount() != 2 {
		t.Errorf("back should keep the selection")
	}

	m = press(t, m, "c", "x")
	if m.page != pageList || m.Session().SelectedCount() != 0 {
		t.Errorf("x in compare should clear and return, page=%v selected=%d", m.page, m.Session().SelectedCount())
	}
}

func TestModel_CapacityNotice(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "space", "down", "space", "down", "space", "down", "space")

	if m.Session().SelectedCount() != 3 {
		t.Fatalf("expected selection capped at 3, got %d", m.Session().SelectedCount())
	}
	if m.Session().IsSelected("4") {
		t.Errorf("fourth program should not be selected")
	}
	if !strings.Contains(m.View(), "up to 3 programs") {
		t.Errorf("expected capacity notice, got:\n%s", m.View())
	}

	m = press(t, m, "down")
	if strings.Contains(m.View(), "up to 3 programs") {
		t.Errorf("notice should clear on the next key")
	}

	// toggling a selected program off works at capacity
	m = press(t, m, "up", "up", "space")
	if m.Session().SelectedCount() != 2 || m.Session().IsSelected("3") {
		t.Errorf("expected program 3 deselected, got %v", m.Session().Selected())
	}
}

func TestModel_DetailPage(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "enter")

	if m.page != pageDetail {
		t.Fatalf("expected detail page")
	}
	if m.detail.Program().Name != "Acme PA" {
		t.Errorf("expected Acme PA in detail, got %q", m.detail.Program().Name)
	}
	if !strings.Contains(m.View(), "Acme PA") {
		t.Errorf("expected program name in detail view")
	}

	m = press(t, m, "b")
	if m.page != pageList {
		t.Errorf("expected b to return to the list")
	}
}

func TestModel_FilterBar(t *testing.T) {
	m := loadedModel(t)

	m = press(t, m, "/")
	if !m.filters.Focused() {
		t.Fatal("expected / to focus the filter bar")
	}

	// State options are CA, NY, TX
	m = press(t, m, "down")
	if got := m.Session().Filter().State; got != "CA" {
		t.Fatalf("expected State=CA, got %q", got)
	}
	if !strings.Contains(m.View(), "Showing 1 of 5 programs") {
		t.Errorf("expected filtered count, got:\n%s", m.View())
	}

	m = press(t, m, "up", "up")
	if got := m.Session().Filter().State; got != "TX" {
		t.Fatalf("expected up to wrap through Any to TX, got %q", got)
	}

	// move to the No GRE Required checkbox
	m = press(t, m, "right", "right", "right", "right", "right", "space")
	if !m.Session().Filter().Excludes(catalog.ExcludeGRERequired) {
		t.Fatalf("expected GRE exclusion on, filter %+v", m.Session().Filter())
	}
	if len(m.Session().Displayed()) != 0 {
		t.Fatalf("expected no TX program without a GRE requirement")
	}
	if !strings.Contains(m.View(), emptyListMessage) {
		t.Errorf("expected empty message")
	}

	m = press(t, m, "backspace")
	if m.Session().Filter().Excludes(catalog.ExcludeGRERequired) {
		t.Errorf("backspace should reset the focused control")
	}

	m = press(t, m, "R")
	if m.Session().Filter().IsActive() {
		t.Errorf("R should reset every filter")
	}

	m = press(t, m, "esc")
	if m.filters.Focused() {
		t.Errorf("esc should leave the filter bar")
	}
}

func TestModel_ShowHideFilters(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "f")
	if m.filters.Visible() {
		t.Fatal("expected f to hide the filter bar")
	}
	if !strings.Contains(m.View(), "Filters hidden") {
		t.Errorf("expected collapsed filter summary")
	}

	m = press(t, m, "/")
	if !m.filters.Visible() || !m.filters.Focused() {
		t.Errorf("focusing filters should expand them")
	}
}

func TestModel_Export(t *testing.T) {
	cfg := testConfig(t)
	records := fixturePrograms()
	m := New(context.Background(), cfg, func(context.Context) ([]program.Program, error) { return records, nil }, nil)
	m = send(t, m, loadedMsg{records: records})

	m = press(t, m, "e")
	if !strings.Contains(m.View(), "Saved 5 programs to") {
		t.Fatalf("expected export notice, got:\n%s", m.View())
	}
	data, err := os.ReadFile(cfg.ExportPath())
	if err != nil {
		t.Fatalf("expected export file: %v", err)
	}
	if !strings.HasPrefix(string(data), "ID,Program Name,") {
		t.Errorf("unexpected export header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestModel_ExportEmptySet(t *testing.T) {
	cfg := testConfig(t)
	records := fixturePrograms()
	m := New(context.Background(), cfg, func(context.Context) ([]program.Program, error) { return records, nil }, nil)
	m = send(t, m, loadedMsg{records: records})

	m.session.SetFilter(catalog.FilterState{State: "WA"})
	m.refreshList()
	m = press(t, m, "e")

	if !strings.Contains(m.View(), "Nothing to download") {
		t.Errorf("expected empty export notice")
	}
	if _, err := os.Stat(cfg.ExportPath()); !os.IsNotExist(err) {
		t.Errorf("no file should be written for an empty set")
	}
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestModel_WindowResize(t *testing.T) {
	m := loadedModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if !m.layout.IsCompact {
		t.Errorf("expected compact layout at 80 columns")
	}
	if !strings.Contains(m.View(), "Acme PA") {
		t.Errorf("expected rows after resize")
	}
	if n := len(m.list.table.Columns()); n != 7 {
		t.Errorf("expected start column dropped in compact mode, got %d columns", n)
	}
}

func TestModel_SheetChangeReloads(t *testing.T) {
	changes := make(chan struct{}, 1)
	m := newTestModel(t)
	m.WatchChanges(changes)
	m = send(t, m, loadedMsg{records: fixturePrograms()})

	changes <- struct{}{}
	if _, ok := m.waitForChange()().(sheetChangedMsg); !ok {
		t.Fatal("expected a sheetChangedMsg from the watch command")
	}

	next, cmd := m.Update(sheetChangedMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	if m.Session().Status() != session.StatusLoading {
		t.Fatalf("expected loading after a sheet change, got %v", m.Session().Status())
	}
	if !strings.Contains(m.View(), "Program sheet changed") {
		t.Errorf("expected reload notice, got:\n%s", m.View())
	}

	m = send(t, m, loadedMsg{records: fixturePrograms()[:2]})
	if m.Session().Total() != 2 {
		t.Errorf("expected reloaded set of 2, got %d", m.Session().Total())
	}

	close(changes)
	if msg := m.waitForChange()(); msg != nil {
		t.Errorf("expected nil message once the watcher stops, got %T", msg)
	}
}

func TestModel_NoWatchCommandWithoutChanges(t *testing.T) {
	m := newTestModel(t)
	if m.waitForChange() != nil {
		t.Error("expected no watch command when no change channel is set")
	}
}
