package domain

// Business validation constants
const (
	MaxNotesLength          = 500
	MaxServicesPerBooking   = 20
	MaxServiceDurationTotal = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Draft persistence constants
const (
	// DraftSchemaVersion is written into every persisted snapshot.
	// Snapshots with another version are discarded on restore.
	DraftSchemaVersion = 1

	// DefaultDraftKeyPrefix is combined with the user id to build the storage key
	DefaultDraftKeyPrefix = "booking-draft"
)
