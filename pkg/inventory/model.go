package inventory

import (
	"time"

	"foodkeeper/pkg/expiry"
)

// Item is one stocked food entry. Amount counts the remaining units.
type Item struct {
	ID           string    `json:"id"`
	MainCategory string    `json:"main_category"`
	SubCategory  string    `json:"sub_category"`
	Tag          string    `json:"tag"`
	ExpireDate   time.Time `json:"expire_date"`
	Amount       int       `json:"amount"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DaysLeft is the countdown to ExpireDate relative to now.
func (i Item) DaysLeft(now time.Time) int {
	return expiry.DaysUntil(i.ExpireDate, now)
}

// Urgency buckets the item relative to now.
func (i Item) Urgency(now time.Time) expiry.Urgency {
	return expiry.Classify(i.DaysLeft(now))
}

// Outcome records how an item left the inventory.
type Outcome string

const (
	Eaten   Outcome = "eaten"
	Ditched Outcome = "ditched"
)

// Event is an entry of the consumption history.
type Event struct {
	Item    Item      `json:"item"`
	Outcome Outcome   `json:"outcome"`
	Amount  int       `json:"amount"`
	At      time.Time `json:"at"`
}
