// Package hotel holds the front-desk value types: bookings, the room
// catalog, and the two pure policies the desk applies to them (first-fit
// room allocation and stay pricing).
package hotel

import (
	"fmt"
	"sort"
)

const (
	// MaxNights bounds a single stay.
	MaxNights = 999
	// MaxRate bounds a nightly rate. With MaxNights it keeps Price well inside int64.
	MaxRate = 10_000_000
)

// Booking is one active stay. Values are immutable once checked in.
type Booking struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Mobile     string  `json:"mobile"`
	RoomNumber int     `json:"room"`
	Days       int     `json:"days"`
	Price      float64 `json:"price"`
}

// RoomClass is a named partition of room numbers sharing one nightly rate.
type RoomClass struct {
	ID    int
	Name  string
	Rate  int
	Rooms []int
}

// Owns reports whether room belongs to the class.
func (c RoomClass) Owns(room int) bool {
	for _, r := range c.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

// PaymentMethod applies a percentage discount to the nightly subtotal.
type PaymentMethod struct {
	ID       int
	Name     string
	Discount int
}

// Catalog is the static room and payment configuration of the property.
type Catalog struct {
	RoomClasses    []RoomClass
	PaymentMethods []PaymentMethod
}

// DefaultCatalog mirrors the rooms and payment options the desk ships with.
func DefaultCatalog() Catalog {
	return Catalog{
		RoomClasses: []RoomClass{
			{ID: 1, Name: "Deluxe", Rate: 2000, Rooms: RoomRange(1, 10)},
			{ID: 2, Name: "Semi-Deluxe", Rate: 1500, Rooms: RoomRange(11, 25)},
			{ID: 3, Name: "General", Rate: 1000, Rooms: RoomRange(26, 45)},
			{ID: 4, Name: "Joint", Rate: 1700, Rooms: []int{46, 47, 48, 49, 50}},
		},
		PaymentMethods: []PaymentMethod{
			{ID: 1, Name: "Cash", Discount: 0},
			{ID: 2, Name: "Credit/Debit Card", Discount: 10},
		},
	}
}

// RoomRange returns the inclusive sequence first..last.
func RoomRange(first, last int) []int {
	if last < first {
		return nil
	}
	rooms := make([]int, 0, last-first+1)
	for r := first; r <= last; r++ {
		rooms = append(rooms, r)
	}
	return rooms
}

// RoomClass looks up a class by ID.
func (c Catalog) RoomClass(id int) (RoomClass, bool) {
	for _, rc := range c.RoomClasses {
		if rc.ID == id {
			return rc, true
		}
	}
	return RoomClass{}, false
}

// PaymentMethod looks up a payment method by ID.
func (c Catalog) PaymentMethod(id int) (PaymentMethod, bool) {
	for _, pm := range c.PaymentMethods {
		if pm.ID == id {
			return pm, true
		}
	}
	return PaymentMethod{}, false
}

// ClassOf returns the class owning room, if any.
func (c Catalog) ClassOf(room int) (RoomClass, bool) {
	for _, rc := range c.RoomClasses {
		if rc.Owns(room) {
			return rc, true
		}
	}
	return RoomClass{}, false
}

// Validate checks the catalog invariants: unique IDs, positive rates,
// discounts within 0..100, and room sets that are positive, ascending and
// pairwise disjoint.
func (c Catalog) Validate() error {
	if len(c.RoomClasses) == 0 {
		return fmt.Errorf("at least one room class is required")
	}
	if len(c.PaymentMethods) == 0 {
		return fmt.Errorf("at least one payment method is required")
	}
	classIDs := map[int]struct{}{}
	owner := map[int]string{}
	for i, rc := range c.RoomClasses {
		if _, dup := classIDs[rc.ID]; dup {
			return fmt.Errorf("room_classes[%d]: duplicate id %d", i, rc.ID)
		}
		classIDs[rc.ID] = struct{}{}
		if rc.Name == "" {
			return fmt.Errorf("room_classes[%d]: name is required", i)
		}
		if rc.Rate <= 0 {
			return fmt.Errorf("room_classes[%d]: rate must be positive", i)
		}
		if rc.Rate > MaxRate {
			return fmt.Errorf("room_classes[%d]: rate must not exceed %d", i, MaxRate)
		}
		if len(rc.Rooms) == 0 {
			return fmt.Errorf("room_classes[%d]: rooms are required", i)
		}
		if !sort.IntsAreSorted(rc.Rooms) {
			return fmt.Errorf("room_classes[%d]: rooms must be ascending", i)
		}
		for _, room := range rc.Rooms {
			if room <= 0 {
				return fmt.Errorf("room_classes[%d]: room %d must be positive", i, room)
			}
			if other, taken := owner[room]; taken {
				return fmt.Errorf("room_classes[%d]: room %d already belongs to %s", i, room, other)
			}
			owner[room] = rc.Name
		}
	}
	methodIDs := map[int]struct{}{}
	for i, pm := range c.PaymentMethods {
		if _, dup := methodIDs[pm.ID]; dup {
			return fmt.Errorf("payment_methods[%d]: duplicate id %d", i, pm.ID)
		}
		methodIDs[pm.ID] = struct{}{}
		if pm.Name == "" {
			return fmt.Errorf("payment_methods[%d]: name is required", i)
		}
		if pm.Discount < 0 || pm.Discount > 100 {
			return fmt.Errorf("payment_methods[%d]: discount must be within 0..100", i)
		}
	}
	return nil
}

// AllocateRoom returns the lowest room of class not held by an active booking.
func AllocateRoom(class RoomClass, active []Booking) (int, error) {
	taken := make(map[int]struct{}, len(active))
	for _, b := range active {
		taken[b.RoomNumber] = struct{}{}
	}
	for _, room := range class.Rooms {
		if _, ok := taken[room]; !ok {
			return room, nil
		}
	}
	return 0, &NotAvailableError{RoomClass: class.Name}
}

// Price is rate * days less the payment discount. days must be within
// 1..MaxNights and the class rate within MaxRate.
func Price(class RoomClass, method PaymentMethod, days int) float64 {
	gross := int64(class.Rate) * int64(days) * int64(100-method.Discount)
	return float64(gross) / 100
}
