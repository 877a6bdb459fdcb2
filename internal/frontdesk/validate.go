package frontdesk

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kingrea/staymitar/internal/hotel"
)

// CheckInForm carries the raw strings a guest registration form submits.
type CheckInForm struct {
	Name          string
	Address       string
	Mobile        string
	Days          string
	RoomClass     string
	PaymentMethod string
}

// checkIn is a validated form.
type checkIn struct {
	name    string
	address string
	mobile  string
	days    int
	class   hotel.RoomClass
	method  hotel.PaymentMethod
}

// validate checks fields in form order and stops at the first failure.
func validate(form CheckInForm, catalog hotel.Catalog) (checkIn, error) {
	var in checkIn

	in.name = strings.TrimSpace(form.Name)
	if in.name == "" {
		return checkIn{}, &hotel.ValidationError{Field: "name", Msg: "is required"}
	}
	if !isAlpha(in.name) {
		return checkIn{}, &hotel.ValidationError{Field: "name", Msg: "must contain letters only"}
	}

	in.address = strings.TrimSpace(form.Address)
	if in.address == "" {
		return checkIn{}, &hotel.ValidationError{Field: "address", Msg: "is required"}
	}

	in.mobile = strings.TrimSpace(form.Mobile)
	if len(in.mobile) != 10 || !isDigits(in.mobile) {
		return checkIn{}, &hotel.ValidationError{Field: "mobile", Msg: "must be exactly 10 digits"}
	}

	days := strings.TrimSpace(form.Days)
	n, err := strconv.Atoi(days)
	if err != nil || !isDigits(days) || n <= 0 {
		return checkIn{}, &hotel.ValidationError{Field: "days", Msg: "must be a positive whole number"}
	}
	if n > hotel.MaxNights {
		return checkIn{}, &hotel.ValidationError{Field: "days", Msg: fmt.Sprintf("must not exceed %d", hotel.MaxNights)}
	}
	in.days = n

	classID, err := strconv.Atoi(strings.TrimSpace(form.RoomClass))
	class, ok := catalog.RoomClass(classID)
	if err != nil || !ok {
		return checkIn{}, &hotel.ValidationError{Field: "room_class", Msg: "select one of the listed room types"}
	}
	in.class = class

	methodID, err := strconv.Atoi(strings.TrimSpace(form.PaymentMethod))
	method, ok := catalog.PaymentMethod(methodID)
	if err != nil || !ok {
		return checkIn{}, &hotel.ValidationError{Field: "payment_method", Msg: "select one of the listed payment methods"}
	}
	in.method = method

	return in, nil
}

// ParseRoomNumber validates a room number typed at the checkout or info prompt.
func ParseRoomNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil || !isDigits(raw) || n <= 0 {
		return 0, &hotel.ValidationError{Field: "room_number", Msg: "enter a valid room number"}
	}
	return n, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
