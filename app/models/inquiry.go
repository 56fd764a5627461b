package models

import "time"

// Inquiry kinds. Contact submissions come from the general contact
// form; inquiry submissions come from the wedding inquiry form and
// carry the extra budget/priority fields. Both live in one table.
const (
	KindContact = "contact"
	KindInquiry = "inquiry"
)

// Shared status values.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Contact-only and inquiry-only statuses.
const (
	StatusInProgress = "in-progress"
	StatusQuoted     = "quoted"
	StatusBooked     = "booked"
)

// Inquiry priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Packages offered on both forms.
var Packages = []string{"basic", "premium", "luxury", "custom"}

// Budgets accepted on the inquiry form.
var Budgets = []string{"under-50jt", "50jt-100jt", "100jt-200jt", "above-200jt", "discuss"}

var contactStatuses = []string{StatusNew, StatusContacted, StatusInProgress, StatusCompleted, StatusCancelled}
var inquiryStatuses = []string{StatusNew, StatusContacted, StatusQuoted, StatusBooked, StatusCompleted, StatusCancelled}

// StatusesFor returns the status set for the given record kind.
func StatusesFor(kind string) []string {
	if kind == KindInquiry {
		return inquiryStatuses
	}
	return contactStatuses
}

// ValidStatus reports whether status belongs to the kind's status set.
func ValidStatus(kind, status string) bool {
	for _, s := range StatusesFor(kind) {
		if s == status {
			return true
		}
	}
	return false
}

// ValidPackage reports whether pkg is one of the offered packages.
func ValidPackage(pkg string) bool {
	for _, p := range Packages {
		if p == pkg {
			return true
		}
	}
	return false
}

// ValidBudget reports whether budget is one of the accepted ranges.
func ValidBudget(budget string) bool {
	for _, b := range Budgets {
		if b == budget {
			return true
		}
	}
	return false
}

// ValidPriority reports whether priority is one of the known levels.
func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Inquiry is a customer submission from either public form.
// Kind tags the variant: budget and priority are only meaningful for
// KindInquiry, guest count only for KindContact.
type Inquiry struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	WeddingDate     *time.Time `json:"wedding_date,omitempty"`
	Package         string     `json:"package,omitempty"`
	GuestCount      string     `json:"guest_count,omitempty"`
	Budget          string     `json:"budget,omitempty"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority,omitempty"`
	Source          string     `json:"source"`
	Notes           string     `json:"notes,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// WeddingDateFormatted renders the wedding date for admin views.
func (i *Inquiry) WeddingDateFormatted() string {
	if i.WeddingDate == nil {
		return "Not specified"
	}
	return i.WeddingDate.Format("Monday, 2 January 2006")
}

// DaysUntilWedding returns the whole days from now until the wedding
// date, negative if it has passed, or 0/false when no date was given.
func (i *Inquiry) DaysUntilWedding(now time.Time) (int, bool) {
	if i.WeddingDate == nil {
		return 0, false
	}
	return int(i.WeddingDate.Sub(now).Hours() / 24), true
}
