package expiry

// Urgency buckets an item by how soon it expires.
type Urgency int

const (
	Expired Urgency = iota
	WithinThreeDays
	WithinWeek
	WithinMonth
	Later
)

// Buckets lists the urgency values shown as sections on the urgent screen,
// most pressing first. Later is deliberately absent.
var Buckets = []Urgency{Expired, WithinThreeDays, WithinWeek, WithinMonth}

// Classify maps a day countdown onto its bucket.
//
//	days < 0     Expired
//	0 <= days <= 3  WithinThreeDays
//	4 <= days <= 6  WithinWeek
//	7 <= days < 30  WithinMonth
//	days >= 30   Later
func Classify(days int) Urgency {
	switch {
	case days < 0:
		return Expired
	case days <= 3:
		return WithinThreeDays
	case days < UrgentWindow:
		return WithinWeek
	case days < 30:
		return WithinMonth
	default:
		return Later
	}
}

// IsUrgent reports whether an item that has not yet expired falls inside
// UrgentWindow, i.e. days in [0, 6].
func IsUrgent(days int) bool {
	return days >= 0 && days < UrgentWindow
}

// NeedsAttention is the card emphasis rule: urgent or already expired.
func NeedsAttention(days int) bool {
	return days < UrgentWindow
}

// String returns the section title for the bucket.
func (u Urgency) String() string {
	switch u {
	case Expired:
		return "Expired"
	case WithinThreeDays:
		return "Expires in 3 days"
	case WithinWeek:
		return "Expires in this week"
	case WithinMonth:
		return "Expires in this month"
	case Later:
		return "Later"
	default:
		return "Unknown"
	}
}
