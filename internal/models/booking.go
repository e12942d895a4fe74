package models

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusPending           BookingStatus = "Pending"
	StatusConfirmed         BookingStatus = "Confirmed"
	StatusPaymentSuccessful BookingStatus = "Payment Successful"
	StatusRated             BookingStatus = "Rated Successfully"
	StatusRejected          BookingStatus = "Rejected"
)

var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:           {StatusConfirmed, StatusRejected},
	StatusConfirmed:         {StatusPaymentSuccessful},
	StatusPaymentSuccessful: {StatusRated},
}

// CanTransition reports whether a booking in s may move to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Extension is an optional time extension sold with a booking.
type Extension string

const (
	ExtensionNone   Extension = "None"
	Extension30Min  Extension = "30 minutes"
	Extension1Hour  Extension = "1 hour"
	Extension2Hours Extension = "2 hours"
)

// Hours returns the billable hours of e. The empty value means none.
func (e Extension) Hours() (float64, error) {
	switch e {
	case "", ExtensionNone:
		return 0, nil
	case Extension30Min:
		return 0.5, nil
	case Extension1Hour:
		return 1, nil
	case Extension2Hours:
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown time extension %q", string(e))
	}
}

// Date layouts used by persisted and derived string fields.
const (
	PublishedDateLayout = "January 02, 2006"
	NotificationLayout  = "Jan 02, 2006 3:04 PM"
	TransactionLayout   = "Jan 02, 2006"
	LastActiveLayout    = "Jan 2006"
)

// Booking is a row in a user's ledger. SpaceTitle is a weak reference to an
// EventSpace in some owner's catalog.
type Booking struct {
	ID            string        `json:"BookingId"`
	SpaceTitle    string        `json:"Headline"`
	Image         string        `json:"Image"`
	PublishedDate string        `json:"PublishedDate"`
	BookingDate   time.Time     `json:"BookingDate"`
	GuestCount    int           `json:"GuestCount"`
	EventTime     string        `json:"EventTime"`
	ExtraChairs   int           `json:"ExtraChairs"`
	TimeExtension Extension     `json:"TimeExtension"`
	Price         float64       `json:"Price"`
	Status        BookingStatus `json:"Status"`
	Rating        int           `json:"Rating"`
	Category      string        `json:"Category"`
}

// Notification is one feed entry. Feeds are ordered by insertion, not by
// Timestamp.
type Notification struct {
	Title     string `json:"Title"`
	Message   string `json:"Message"`
	Timestamp string `json:"Timestamp"`
}

// Transaction is a booking projected for the admin ledger.
type Transaction struct {
	ID     string `json:"ID"`
	Date   string `json:"Date"`
	Owner  string `json:"Owner"`
	Space  string `json:"Space"`
	Amount string `json:"Amount"`

	OwnerID int       `json:"-"`
	At      time.Time `json:"-"`
	Value   float64   `json:"-"`
}
