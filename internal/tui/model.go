package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hasanstore/pembukuan/internal/config"
	"github.com/hasanstore/pembukuan/internal/gateway"
	"github.com/hasanstore/pembukuan/internal/inventory"
	"github.com/hasanstore/pembukuan/internal/model"
	"github.com/hasanstore/pembukuan/internal/tui/themes"
)

// mode is the input mode of the inventory screen.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeEdit
	modePeriod
)

// Model holds the inventory TUI state. All bookkeeping state lives in the
// controller; the model only adds input handling, the cursor, and the
// status line.
type Model struct {
	controller  *inventory.Controller
	gw          gateway.InventoryGateway
	store       config.Store
	theme       themes.Theme
	status      string
	prevSearch  string
	searchInput textinput.Model
	editInput   textinput.Model
	periodInput textinput.Model
	keymap      KeyMap
	spinner     spinner.Model
	mode        mode
	cursor      int
	statusKind  statusKind
	statusSeq   int
	width       int
	height      int
	dark        bool
	quitting    bool
}

// NewModel creates the inventory screen model.
func NewModel(ctrl *inventory.Controller, gw gateway.InventoryGateway, store config.Store, dark bool) Model {
	search := textinput.New()
	search.Placeholder = "cari nama HP / IMEI"
	search.CharLimit = 64

	edit := textinput.New()
	edit.Placeholder = "harga jual"
	edit.CharLimit = 16

	period := textinput.New()
	period.Placeholder = "bulan tahun (cth: 1 2025)"
	period.CharLimit = 8

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := themes.Light
	if dark {
		theme = themes.Dark
	}

	return Model{
		controller:  ctrl,
		gw:          gw,
		store:       store,
		keymap:      DefaultKeyMap(),
		theme:       theme,
		dark:        dark,
		searchInput: search,
		editInput:   edit,
		periodInput: period,
		spinner:     sp,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case priceUpdatedMsg:
		return m.handlePriceUpdated(msg)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modePeriod:
			return m.updatePeriod(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.ViewAll):
		return m.switchView(model.ViewAllTransactions)
	case key.Matches(msg, k.ViewUnsold):
		return m.switchView(model.ViewUnsold)
	case key.Matches(msg, k.ViewSold):
		return m.switchView(model.ViewSold)
	case key.Matches(msg, k.CycleView):
		next := (m.controller.ActiveView() + 1) % 3
		return m.switchView(next)

	case key.Matches(msg, k.Fetch):
		return m.startFetch()

	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.controller.VisiblePage())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, k.PrevPage):
		m.controller.SetPage(m.controller.Page() - 1)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, k.NextPage):
		m.controller.SetPage(m.controller.Page() + 1)
		m.cursor = 0
		return m, nil

	case key.Matches(msg, k.PageSize):
		m.cyclePageSize()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.prevSearch = m.controller.SearchTerm()
		m.searchInput.SetValue(m.controller.SearchTerm())
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.Period):
		m.mode = modePeriod
		p := m.controller.Period()
		m.periodInput.SetValue(fmt.Sprintf("%d %d", p.Month, p.Year))
		m.periodInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.Edit):
		return m.startEdit()

	case key.Matches(msg, k.ToggleTheme):
		m.toggleTheme()
		return m, nil
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.controller.SetSearchTerm(m.prevSearch)
		m.searchInput.Blur()
		m.mode = modeBrowse
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		m.searchInput.Blur()
		m.mode = modeBrowse
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.controller.SetSearchTerm(m.searchInput.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.controller.CancelEdit()
		m.editInput.Blur()
		m.mode = modeBrowse
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		ticket, err := m.controller.StartCommit()
		if err != nil {
			var cmd tea.Cmd
			switch err {
			case inventory.ErrInvalidPrice:
				m, cmd = m.setStatus(statusError, "Harga jual harus berupa angka yang valid")
			case inventory.ErrCommitInProgress:
				m, cmd = m.setStatus(statusError, "Masih menyimpan, mohon tunggu")
			default:
				m, cmd = m.setStatus(statusError, err.Error())
			}
			return m, cmd
		}
		return m, tea.Batch(updatePriceCmd(m.gw, ticket), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = m.controller.UpdateDraft(m.editInput.Value())
	return m, cmd
}

func (m Model) updatePeriod(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.periodInput.Blur()
		m.mode = modeBrowse
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		var month, year int
		if _, err := fmt.Sscanf(strings.TrimSpace(m.periodInput.Value()), "%d %d", &month, &year); err != nil {
			newM, cmd := m.setStatus(statusError, "Format periode: bulan tahun (cth: 1 2025)")
			return newM, cmd
		}
		if err := m.controller.SetPeriod(month, year); err != nil {
			newM, cmd := m.setStatus(statusError, "Bulan harus antara 1 dan 12")
			return newM, cmd
		}
		m.periodInput.Blur()
		m.mode = modeBrowse
		newM, cmd := m.setStatus(statusSuccess, "Periode: "+m.controller.Period().String()+" (tekan r untuk memuat)")
		return newM, cmd
	}

	var cmd tea.Cmd
	m.periodInput, cmd = m.periodInput.Update(msg)
	return m, cmd
}

func (m Model) switchView(kind model.ViewKind) (tea.Model, tea.Cmd) {
	m.controller.SelectView(kind)
	m.cursor = 0
	return m, nil
}

func (m Model) startFetch() (tea.Model, tea.Cmd) {
	kind := m.controller.ActiveView()
	ticket, err := m.controller.StartFetch(kind)
	if err != nil {
		newM, cmd := m.setStatus(statusError, "Sedang memuat, mohon tunggu")
		return newM, cmd
	}
	return m, tea.Batch(fetchCmd(m.gw, ticket), m.spinner.Tick)
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	visible := m.controller.VisiblePage()
	if m.cursor >= len(visible) {
		return m, nil
	}

	if err := m.controller.BeginEdit(visible[m.cursor].ID); err != nil {
		newM, cmd := m.setStatus(statusError, err.Error())
		return newM, cmd
	}

	draft, _ := m.controller.Draft()
	m.editInput.SetValue(draft)
	m.editInput.Focus()
	m.editInput.CursorEnd()
	m.mode = modeEdit
	return m, textinput.Blink
}

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.controller.FailFetch(msg.ticket, msg.err)
		newM, cmd := m.setStatus(statusError, userMessage(msg.err))
		return newM, cmd
	}

	count, err := m.controller.CompleteFetch(msg.ticket, msg.records)
	if err != nil {
		// Stale response; nothing to show.
		return m, nil
	}

	m.cursor = 0
	newM, cmd := m.setStatus(statusSuccess, fmt.Sprintf("Data berhasil dimuat (%d item)", count))
	return newM, cmd
}

func (m Model) handlePriceUpdated(msg priceUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.controller.FailCommit(msg.ticket, msg.err)
		newM, cmd := m.setStatus(statusError, userMessage(msg.err))
		return newM, cmd
	}

	m.controller.CompleteCommit(msg.ticket)
	m.editInput.Blur()
	m.mode = modeBrowse
	if visible := m.controller.VisiblePage(); m.cursor >= len(visible) && m.cursor > 0 {
		m.cursor = len(visible) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}

	newM, cmd := m.setStatus(statusSuccess, "Harga jual berhasil diupdate")
	return newM, cmd
}

func (m Model) setStatus(kind statusKind, text string) (Model, tea.Cmd) {
	m.status = text
	m.statusKind = kind
	m.statusSeq++
	return m, expireStatusCmd(m.statusSeq)
}

func (m *Model) cyclePageSize() {
	current := m.controller.PageSize()
	for i, size := range inventory.PageSizes {
		if size == current {
			next := inventory.PageSizes[(i+1)%len(inventory.PageSizes)]
			_ = m.controller.SetPageSize(next)
			return
		}
	}
	_ = m.controller.SetPageSize(inventory.DefaultPageSize)
}

func (m *Model) toggleTheme() {
	m.dark = !m.dark
	if m.dark {
		m.theme = themes.Dark
	} else {
		m.theme = themes.Light
	}

	if m.store != nil {
		if prefs, err := m.store.LoadPrefs(); err == nil {
			prefs.DarkMode = m.dark
			_ = m.store.SavePrefs(prefs)
		}
	}
}

func (m Model) busy() bool {
	return m.controller.Loading(m.controller.ActiveView())
}

// userMessage maps a gateway failure to its notification text.
func userMessage(err error) string {
	if gwErr, ok := err.(*gateway.Error); ok {
		return gwErr.UserMessage()
	}
	return err.Error()
}
