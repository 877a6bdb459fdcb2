package hotel

import (
	"errors"
	"testing"
)

func TestAllocateRoomFirstFit(t *testing.T) {
	deluxe := RoomClass{ID: 1, Name: "Deluxe", Rate: 2000, Rooms: RoomRange(1, 10)}
	tests := []struct {
		name   string
		active []Booking
		want   int
	}{
		{name: "empty", active: nil, want: 1},
		{name: "first taken", active: []Booking{{RoomNumber: 1}}, want: 2},
		{name: "gap reused", active: []Booking{{RoomNumber: 1}, {RoomNumber: 3}}, want: 2},
		{name: "other class ignored", active: []Booking{{RoomNumber: 11}, {RoomNumber: 46}}, want: 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := AllocateRoom(deluxe, test.active)
			if err != nil {
				t.Fatalf("AllocateRoom: %v", err)
			}
			if got != test.want {
				t.Fatalf("room = %d, want %d", got, test.want)
			}
		})
	}
}

func TestAllocateRoomFullClass(t *testing.T) {
	joint := RoomClass{ID: 4, Name: "Joint", Rate: 1700, Rooms: []int{46, 47}}
	_, err := AllocateRoom(joint, []Booking{{RoomNumber: 47}, {RoomNumber: 46}})
	var notAvailable *NotAvailableError
	if !errors.As(err, &notAvailable) {
		t.Fatalf("expected NotAvailableError, got %v", err)
	}
	if notAvailable.RoomClass != "Joint" {
		t.Fatalf("room class = %q, want Joint", notAvailable.RoomClass)
	}
}

func TestPrice(t *testing.T) {
	class := RoomClass{Rate: 2000}
	if got := Price(class, PaymentMethod{Discount: 10}, 3); got != 5400 {
		t.Fatalf("price = %v, want 5400", got)
	}
	if got := Price(class, PaymentMethod{Discount: 0}, 2); got != 4000 {
		t.Fatalf("price = %v, want 4000", got)
	}
	if got := Price(RoomClass{Rate: 1500}, PaymentMethod{Discount: 10}, 1); got != 1350 {
		t.Fatalf("price = %v, want 1350", got)
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	catalog := DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	seen := 0
	for room := 1; room <= 50; room++ {
		if _, ok := catalog.ClassOf(room); ok {
			seen++
		}
	}
	if seen != 50 {
		t.Fatalf("catalog covers %d rooms, want 50", seen)
	}
}

func TestCatalogValidateRejectsOverlap(t *testing.T) {
	catalog := Catalog{
		RoomClasses: []RoomClass{
			{ID: 1, Name: "A", Rate: 10, Rooms: []int{1, 2}},
			{ID: 2, Name: "B", Rate: 10, Rooms: []int{2, 3}},
		},
		PaymentMethods: []PaymentMethod{{ID: 1, Name: "Cash"}},
	}
	if err := catalog.Validate(); err == nil {
		t.Fatalf("expected overlap to be rejected")
	}
}

func TestCatalogValidateRejectsHugeRate(t *testing.T) {
	catalog := DefaultCatalog()
	catalog.RoomClasses[0].Rate = MaxRate + 1
	if err := catalog.Validate(); err == nil {
		t.Fatalf("expected rate above %d to be rejected", MaxRate)
	}
}
