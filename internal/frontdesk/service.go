// Package frontdesk implements the desk operations on top of the record
// store: check-in, checkout, lookup by room and the guest list. Every call
// re-reads the store; nothing is cached between operations.
package frontdesk

import (
	"errors"
	"fmt"

	"github.com/kingrea/staymitar/internal/hotel"
	"github.com/kingrea/staymitar/internal/logbook"
)

// Repository is the whole-record store the desk works against.
type Repository interface {
	Append(hotel.Booking) error
	ScanAll() ([]hotel.Booking, error)
	RemoveWhere(func(hotel.Booking) bool) ([]hotel.Booking, error)
}

// GuestEntry is one row of the guest list.
type GuestEntry struct {
	Name       string
	RoomNumber int
}

// Service runs desk operations against a Repository.
type Service struct {
	repo    Repository
	catalog hotel.Catalog
	journal *logbook.Logbook
}

// NewService wires the desk. journal may be nil.
func NewService(repo Repository, catalog hotel.Catalog, journal *logbook.Logbook) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		journal: journal,
	}
}

// Catalog returns the room classes and payment methods on offer.
func (s *Service) Catalog() hotel.Catalog {
	return s.catalog
}

// CheckIn validates the form, allocates the lowest free room in the chosen
// class, prices the stay and appends the booking.
func (s *Service) CheckIn(form CheckInForm) (hotel.Booking, error) {
	// 1. Validate
	in, err := validate(form, s.catalog)
	if err != nil {
		s.journal.Warn("checkin", "rejected: %v", err)
		return hotel.Booking{}, err
	}

	// 2. Load active bookings
	active, err := s.repo.ScanAll()
	if err != nil {
		s.journal.Error("checkin", "scan failed: %v", err)
		return hotel.Booking{}, err
	}

	// 3. Allocate
	room, err := hotel.AllocateRoom(in.class, active)
	if err != nil {
		s.journal.Warn("checkin", "%s: %v", in.name, err)
		return hotel.Booking{}, err
	}

	// 4. Price and persist
	booking := hotel.Booking{
		Name:       in.name,
		Address:    in.address,
		Mobile:     in.mobile,
		RoomNumber: room,
		Days:       in.days,
		Price:      hotel.Price(in.class, in.method, in.days),
	}
	if err := s.repo.Append(booking); err != nil {
		s.journal.Error("checkin", "append failed: %v", err)
		return hotel.Booking{}, err
	}

	s.journal.Info("checkin", "%s -> room %d (%s, %d night(s), %s) total %.2f",
		booking.Name, booking.RoomNumber, in.class.Name, booking.Days, in.method.Name, booking.Price)
	return booking, nil
}

// CheckOut removes the booking holding room and returns it.
func (s *Service) CheckOut(room int) (hotel.Booking, error) {
	active, err := s.repo.ScanAll()
	if err != nil {
		s.journal.Error("checkout", "scan failed: %v", err)
		return hotel.Booking{}, err
	}
	if n := countRoom(active, room); n > 1 {
		err := &hotel.StorageError{
			Op:  "checkout",
			Err: fmt.Errorf("room %d held by %d bookings: %w", room, n, hotel.ErrInconsistent),
		}
		s.journal.Error("checkout", "%v", err)
		return hotel.Booking{}, err
	}

	removed, err := s.repo.RemoveWhere(func(b hotel.Booking) bool { return b.RoomNumber == room })
	if err != nil {
		s.journal.Error("checkout", "rewrite failed: %v", err)
		return hotel.Booking{}, err
	}
	switch len(removed) {
	case 0:
		err := &hotel.NotFoundError{RoomNumber: room}
		s.journal.Warn("checkout", "%v", err)
		return hotel.Booking{}, err
	case 1:
	default:
		// Only reachable if the file changed between the scan and the rewrite.
		s.journal.Error("checkout", "room %d removed %d bookings", room, len(removed))
		return hotel.Booking{}, &hotel.StorageError{
			Op:  "checkout",
			Err: fmt.Errorf("room %d removed %d bookings: %w", room, len(removed), hotel.ErrInconsistent),
		}
	}

	guest := removed[0]
	s.journal.Info("checkout", "%s left room %d", guest.Name, guest.RoomNumber)
	return guest, nil
}

// FindByRoom returns the first active booking for room.
func (s *Service) FindByRoom(room int) (hotel.Booking, error) {
	active, err := s.repo.ScanAll()
	if err != nil {
		s.journal.Error("info", "scan failed: %v", err)
		return hotel.Booking{}, err
	}
	for _, b := range active {
		if b.RoomNumber == room {
			return b, nil
		}
	}
	return hotel.Booking{}, &hotel.NotFoundError{RoomNumber: room}
}

// ListActive returns guest names and rooms in store order. The order is the
// order guests checked in; it is deliberately left unsorted.
func (s *Service) ListActive() ([]GuestEntry, error) {
	active, err := s.repo.ScanAll()
	if err != nil {
		s.journal.Error("list", "scan failed: %v", err)
		return nil, err
	}
	entries := make([]GuestEntry, 0, len(active))
	for _, b := range active {
		entries = append(entries, GuestEntry{Name: b.Name, RoomNumber: b.RoomNumber})
	}
	return entries, nil
}

// IsInconsistent reports whether err is a duplicate-room consistency fault.
func IsInconsistent(err error) bool {
	return errors.Is(err, hotel.ErrInconsistent)
}

func countRoom(active []hotel.Booking, room int) int {
	n := 0
	for _, b := range active {
		if b.RoomNumber == room {
			n++
		}
	}
	return n
}
