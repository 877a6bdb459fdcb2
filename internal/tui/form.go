package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/staymitar/internal/frontdesk"
	"github.com/kingrea/staymitar/internal/hotel"
)

const (
	fieldName = iota
	fieldAddress
	fieldMobile
	fieldDays
	fieldRoomClass
	fieldPayment
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Address",
	"Mobile",
	"Nights",
	"Room type",
	"Payment",
}

// checkInForm is the guest registration screen. The first four fields are
// free text; room type and payment are picked with left/right.
type checkInForm struct {
	inputs    []textinput.Model
	classes   []hotel.RoomClass
	methods   []hotel.PaymentMethod
	classIdx  int
	methodIdx int
	focus     int
	err       string
}

func newCheckInForm(catalog hotel.Catalog) *checkInForm {
	placeholders := []string{"letters only", "street, city", "10 digits", "1"}
	limits := []int{40, 80, 10, 3}
	inputs := make([]textinput.Model, fieldRoomClass)
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = 40
		inputs[i] = in
	}
	f := &checkInForm{
		inputs:  inputs,
		classes: catalog.RoomClasses,
		methods: catalog.PaymentMethods,
	}
	f.inputs[fieldName].Focus()
	return f
}

func (f *checkInForm) focusField(idx int) tea.Cmd {
	if idx < 0 {
		idx = fieldCount - 1
	}
	if idx >= fieldCount {
		idx = 0
	}
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

func (f *checkInForm) onLastField() bool {
	return f.focus == fieldCount-1
}

// update handles a key the App did not consume.
func (f *checkInForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.focusField(f.focus + 1)
		case "shift+tab", "up":
			return f.focusField(f.focus - 1)
		case "left", "right":
			if f.focus >= fieldRoomClass {
				f.cycle(key.String() == "right")
				return nil
			}
		}
	}
	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return cmd
	}
	return nil
}

func (f *checkInForm) cycle(forward bool) {
	step := -1
	if forward {
		step = 1
	}
	switch f.focus {
	case fieldRoomClass:
		if n := len(f.classes); n > 0 {
			f.classIdx = (f.classIdx + step + n) % n
		}
	case fieldPayment:
		if n := len(f.methods); n > 0 {
			f.methodIdx = (f.methodIdx + step + n) % n
		}
	}
}

func (f *checkInForm) submission() frontdesk.CheckInForm {
	form := frontdesk.CheckInForm{
		Name:    f.inputs[fieldName].Value(),
		Address: f.inputs[fieldAddress].Value(),
		Mobile:  f.inputs[fieldMobile].Value(),
		Days:    f.inputs[fieldDays].Value(),
	}
	if len(f.classes) > 0 {
		form.RoomClass = strconv.Itoa(f.classes[f.classIdx].ID)
	}
	if len(f.methods) > 0 {
		form.PaymentMethod = strconv.Itoa(f.methods[f.methodIdx].ID)
	}
	return form
}

// focusByField moves focus to the field a validation error names.
func (f *checkInForm) focusByField(field string) tea.Cmd {
	switch field {
	case "name":
		return f.focusField(fieldName)
	case "address":
		return f.focusField(fieldAddress)
	case "mobile":
		return f.focusField(fieldMobile)
	case "days":
		return f.focusField(fieldDays)
	case "room_class":
		return f.focusField(fieldRoomClass)
	case "payment_method":
		return f.focusField(fieldPayment)
	}
	return nil
}

func (f *checkInForm) view() string {
	label := lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("#AAAAAA"))
	active := label.Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	var rows []string
	for i := 0; i < fieldCount; i++ {
		style := label
		if i == f.focus {
			style = active
		}
		var value string
		switch {
		case i < len(f.inputs):
			value = f.inputs[i].View()
		case i == fieldRoomClass:
			value = f.choiceView(f.roomClassLabels(), f.classIdx, i == f.focus)
		case i == fieldPayment:
			value = f.choiceView(f.paymentLabels(), f.methodIdx, i == f.focus)
		}
		rows = append(rows, style.Render(fieldLabels[i])+value)
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).Render("GUEST CHECK-IN")
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, rows...)...)
	if f.err != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(f.err)
	}
	return body
}

func (f *checkInForm) roomClassLabels() []string {
	labels := make([]string, len(f.classes))
	for i, c := range f.classes {
		labels[i] = fmt.Sprintf("%s (%d/night)", c.Name, c.Rate)
	}
	return labels
}

func (f *checkInForm) paymentLabels() []string {
	labels := make([]string, len(f.methods))
	for i, m := range f.methods {
		if m.Discount > 0 {
			labels[i] = fmt.Sprintf("%s (%d%% off)", m.Name, m.Discount)
			continue
		}
		labels[i] = m.Name
	}
	return labels
}

func (f *checkInForm) choiceView(labels []string, selected int, focused bool) string {
	if len(labels) == 0 {
		return "-"
	}
	text := labels[selected]
	if focused {
		return "< " + text + " >"
	}
	return "  " + text
}
