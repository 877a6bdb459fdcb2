// internal/tui/app.go
//
// The front desk TUI. It follows The Elm Architecture like every bubbletea
// program: App holds state, Update turns messages into new state, View
// renders it. Store work runs inside tea.Cmds and reports back as messages;
// the desk accepts no new input while one is in flight.

package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/staymitar/internal/config"
	"github.com/kingrea/staymitar/internal/frontdesk"
	"github.com/kingrea/staymitar/internal/hotel"
	"github.com/kingrea/staymitar/internal/logbook"
	"github.com/kingrea/staymitar/internal/receipt"
	"github.com/kingrea/staymitar/internal/store"
)

// appState represents which screen we're on
type appState int

const (
	stateMainMenu   appState = iota // Check-in, Guest List, ...
	stateCheckIn                    // Registration form
	stateRoomPrompt                 // Room number entry for checkout / info
	stateGuestList                  // Guest table
	stateResult                     // Outcome of the last operation
)

type roomAction int

const (
	actionCheckOut roomAction = iota
	actionInfo
)

func (r roomAction) title() string {
	if r == actionInfo {
		return "GET INFO"
	}
	return "CHECKOUT"
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithReceiptRenderer replaces the renderer built from config.
func WithReceiptRenderer(r *receipt.Renderer) AppOption {
	return func(a *App) {
		if r != nil {
			a.receipts = r
		}
	}
}

type checkInDoneMsg struct {
	booking    hotel.Booking
	receipt    receipt.Receipt
	receiptErr error
	err        error
}

type roomDoneMsg struct {
	action  roomAction
	booking hotel.Booking
	err     error
}

type guestListMsg struct {
	entries []frontdesk.GuestEntry
	err     error
}

// App is the main application model.
type App struct {
	state    appState
	config   *config.Config
	desk     *frontdesk.Service
	receipts *receipt.Renderer
	logbook  *logbook.Logbook

	mainMenu   list.Model
	form       *checkInForm
	roomInput  textinput.Model
	roomAction roomAction
	roomErr    string
	guests     []frontdesk.GuestEntry

	result    string
	resultErr bool
	busy      bool
	statusMsg string

	width  int
	height int
}

// menuItem implements list.Item for the main menu
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

const (
	menuCheckIn   = "Check-in"
	menuGuestList = "Guest List"
	menuCheckOut  = "Checkout"
	menuInfo      = "Get Info"
	menuExit      = "Exit"
)

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: menuCheckIn, desc: "Register a guest and allocate a room"},
		menuItem{title: menuGuestList, desc: "Guests currently checked in"},
		menuItem{title: menuCheckOut, desc: "Check a guest out by room number"},
		menuItem{title: menuInfo, desc: "Look up the guest in a room"},
		menuItem{title: menuExit, desc: "Close the desk"},
	}
}

// NewApp loads .staymitar/ from projectDir and wires the desk.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.JournalPath())
	if err != nil {
		return nil, err
	}
	info := cfg.Hotel()
	desk := frontdesk.NewService(store.New(cfg.DataFile()), cfg.Catalog(), lb)

	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "FRONT DESK"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	roomInput := textinput.New()
	roomInput.Prompt = "Room No. "
	roomInput.Placeholder = "e.g. 12"
	roomInput.CharLimit = 4

	app := &App{
		state:     stateMainMenu,
		config:    cfg,
		desk:      desk,
		receipts:  receipt.NewRenderer(cfg.ReceiptsDir(), receipt.Header{Name: info.Name, Location: info.Location, Currency: info.Currency}),
		logbook:   lb,
		mainMenu:  mainMenu,
		roomInput: roomInput,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	lb.Info("session", "desk opened at %s", info.Name)
	return app, nil
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-14))
		return a, nil

	case checkInDoneMsg:
		return a.handleCheckInDone(msg)

	case roomDoneMsg:
		return a.handleRoomDone(msg)

	case guestListMsg:
		a.busy = false
		if msg.err != nil {
			a.showResult(fmt.Sprintf("Could not read the guest list: %v", msg.err), true)
			return a, nil
		}
		a.guests = msg.entries
		a.state = stateGuestList
		a.statusMsg = fmt.Sprintf("%d guest(s) checked in", len(msg.entries))
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.busy {
			return a, nil
		}
		switch a.state {
		case stateMainMenu:
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "enter":
				return a.handleMainMenuSelection()
			}
		case stateCheckIn:
			switch msg.String() {
			case "esc":
				return a.returnToMainMenu()
			case "enter":
				if a.form.onLastField() {
					return a.submitCheckIn()
				}
				return a, a.form.focusField(a.form.focus + 1)
			}
			return a, a.form.update(msg)
		case stateRoomPrompt:
			switch msg.String() {
			case "esc":
				return a.returnToMainMenu()
			case "enter":
				return a.submitRoom()
			}
		case stateGuestList, stateResult:
			switch msg.String() {
			case "esc", "enter", "q":
				return a.returnToMainMenu()
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case stateMainMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case stateCheckIn:
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			cmd = a.form.update(msg)
		}
	case stateRoomPrompt:
		a.roomInput, cmd = a.roomInput.Update(msg)
	}
	return a, cmd
}

func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	a.statusMsg = ""
	switch item.title {
	case menuCheckIn:
		a.form = newCheckInForm(a.desk.Catalog())
		a.state = stateCheckIn
		return a, textinput.Blink
	case menuGuestList:
		a.busy = true
		a.statusMsg = "Loading guests..."
		return a, a.listGuests()
	case menuCheckOut:
		return a.openRoomPrompt(actionCheckOut)
	case menuInfo:
		return a.openRoomPrompt(actionInfo)
	case menuExit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) openRoomPrompt(action roomAction) (tea.Model, tea.Cmd) {
	a.roomAction = action
	a.roomErr = ""
	a.roomInput.SetValue("")
	a.state = stateRoomPrompt
	return a, a.roomInput.Focus()
}

func (a *App) submitCheckIn() (tea.Model, tea.Cmd) {
	form := a.form.submission()
	a.busy = true
	a.form.err = ""
	a.statusMsg = "Checking in..."
	desk, receipts := a.desk, a.receipts
	return a, func() tea.Msg {
		booking, err := desk.CheckIn(form)
		if err != nil {
			return checkInDoneMsg{err: err}
		}
		msg := checkInDoneMsg{booking: booking}
		if receipts != nil {
			msg.receipt, msg.receiptErr = receipts.Render(booking)
		}
		return msg
	}
}

func (a *App) handleCheckInDone(msg checkInDoneMsg) (tea.Model, tea.Cmd) {
	a.busy = false
	a.statusMsg = ""
	if msg.err != nil {
		var verr *hotel.ValidationError
		switch {
		case errors.As(msg.err, &verr):
			a.form.err = msg.err.Error()
			return a, a.form.focusByField(verr.Field)
		case hotel.IsNotAvailable(msg.err):
			a.form.err = msg.err.Error()
			return a, a.form.focusField(fieldRoomClass)
		}
		a.showResult(fmt.Sprintf("Check-in failed: %v", msg.err), true)
		return a, nil
	}

	b := msg.booking
	lines := []string{
		fmt.Sprintf("Room No. %d allocated to %s", b.RoomNumber, strings.ToUpper(b.Name)),
		fmt.Sprintf("Nights: %d", b.Days),
		fmt.Sprintf("Total bill: %s", a.money(b.Price)),
	}
	switch {
	case msg.receiptErr != nil:
		a.logbook.Warn("receipt", "room %d: %v", b.RoomNumber, msg.receiptErr)
		lines = append(lines, fmt.Sprintf("Receipt could not be written: %v", msg.receiptErr))
	case msg.receipt.Number != "":
		a.logbook.Info("receipt", "%s issued for room %d", msg.receipt.Number, b.RoomNumber)
		lines = append(lines, fmt.Sprintf("Receipt %s saved to %s", msg.receipt.Number, msg.receipt.PDFPath))
	}
	a.form = nil
	a.showResult(strings.Join(lines, "\n"), false)
	return a, nil
}

func (a *App) submitRoom() (tea.Model, tea.Cmd) {
	room, err := frontdesk.ParseRoomNumber(a.roomInput.Value())
	if err != nil {
		a.roomErr = err.Error()
		return a, nil
	}
	a.roomErr = ""
	a.busy = true
	desk, action := a.desk, a.roomAction
	return a, func() tea.Msg {
		var b hotel.Booking
		var err error
		if action == actionCheckOut {
			b, err = desk.CheckOut(room)
		} else {
			b, err = desk.FindByRoom(room)
		}
		return roomDoneMsg{action: action, booking: b, err: err}
	}
}

func (a *App) handleRoomDone(msg roomDoneMsg) (tea.Model, tea.Cmd) {
	a.busy = false
	if msg.err != nil {
		if hotel.IsNotFound(msg.err) {
			a.roomErr = msg.err.Error()
			return a, nil
		}
		a.showResult(fmt.Sprintf("%s failed: %v", strings.ToLower(msg.action.title()), msg.err), true)
		return a, nil
	}
	b := msg.booking
	if msg.action == actionCheckOut {
		a.showResult(fmt.Sprintf("Thank you %s for visiting us.\nRoom No. %d is now free.", strings.ToUpper(b.Name), b.RoomNumber), false)
		return a, nil
	}
	a.showResult(a.describe(b), false)
	return a, nil
}

func (a *App) describe(b hotel.Booking) string {
	class := "-"
	if rc, ok := a.desk.Catalog().ClassOf(b.RoomNumber); ok {
		class = rc.Name
	}
	return strings.Join([]string{
		fmt.Sprintf("Name       : %s", strings.ToUpper(b.Name)),
		fmt.Sprintf("Address    : %s", b.Address),
		fmt.Sprintf("Mobile     : %s", b.Mobile),
		fmt.Sprintf("Room No.   : %d (%s)", b.RoomNumber, class),
		fmt.Sprintf("Nights     : %d", b.Days),
		fmt.Sprintf("Total bill : %s", a.money(b.Price)),
	}, "\n")
}

func (a *App) listGuests() tea.Cmd {
	desk := a.desk
	return func() tea.Msg {
		entries, err := desk.ListActive()
		return guestListMsg{entries: entries, err: err}
	}
}

func (a *App) showResult(text string, isErr bool) {
	a.result = text
	a.resultErr = isErr
	a.state = stateResult
}

func (a *App) returnToMainMenu() (tea.Model, tea.Cmd) {
	a.state = stateMainMenu
	a.form = nil
	a.roomInput.Blur()
	a.statusMsg = ""
	return a, nil
}

func (a *App) money(v float64) string {
	currency := "Rs."
	if a.config != nil {
		if c := strings.TrimSpace(a.config.Hotel().Currency); c != "" {
			currency = c
		}
	}
	return fmt.Sprintf("%s %.2f", currency, v)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	var content string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateCheckIn:
		content = a.form.view()
	case stateRoomPrompt:
		content = a.renderRoomPrompt()
	case stateGuestList:
		content = a.renderTitled("GUEST LIST", GuestTable(a.guests))
	case stateResult:
		style := lipgloss.NewStyle()
		if a.resultErr {
			style = style.Foreground(lipgloss.Color("#FF6B6B"))
		}
		content = style.Render(a.result)
	}
	return a.renderBoard(content, width)
}

func (a *App) renderTitled(title, body string) string {
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render(title)
	return lipgloss.JoinVertical(lipgloss.Left, head, "", body)
}

func (a *App) renderRoomPrompt() string {
	body := a.roomInput.View()
	if a.roomErr != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(a.roomErr)
	}
	return a.renderTitled(a.roomAction.title(), body)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, _ := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderBoard(mainContent string, width int) string {
	title := "STAYMITAR"
	if a.config != nil {
		info := a.config.Hotel()
		title = fmt.Sprintf("⬡ %s", strings.ToUpper(info.Name))
		if info.Location != "" {
			title += " · " + info.Location
		}
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render(title)
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width-4)).
		Render(mainContent)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(strings.TrimSpace(a.statusMsg + "  " + a.hints()))
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) hints() string {
	switch a.state {
	case stateCheckIn:
		return "tab/↑↓ move · ←/→ choose · enter on Payment submits · esc back"
	case stateRoomPrompt:
		return "enter confirm · esc back"
	case stateGuestList, stateResult:
		return "enter/esc back"
	}
	return "enter select · q quit"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
