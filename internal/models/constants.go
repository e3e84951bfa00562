package models

// Fallback category used when a record carries none.
const CategoryOther = "Other"

// CategoryFood receives the whole supermarket total in the category breakdown.
const CategoryFood = "Food"

// Card charge statuses offered by the card form.
const (
	CardStatusPending = "Pending"
	CardStatusPaid    = "Paid"
)

