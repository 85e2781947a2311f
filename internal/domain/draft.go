package domain

// BusinessRef identifies the selected business together with its display name
type BusinessRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StaffRef identifies the selected staff member, scoped to the selected business
type StaffRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScheduleChoice is the picked date and start slot. Empty strings mean "not set".
type ScheduleChoice struct {
	Date string // YYYY-MM-DD
	Slot string // HH:MM
}

// IsComplete returns true if both date and slot are set
func (s ScheduleChoice) IsComplete() bool {
	return s.Date != "" && s.Slot != ""
}

// IsEmpty returns true if neither date nor slot is set
func (s ScheduleChoice) IsEmpty() bool {
	return s.Date == "" && s.Slot == ""
}

// DraftTotals is derived from the selected services and never set directly
type DraftTotals struct {
	DurationMinutes int
	Price           float64
}

// ComputeTotals sums durations and prices of services
func ComputeTotals(services []Service) DraftTotals {
	var totals DraftTotals
	for _, s := range services {
		totals.DurationMinutes += s.DurationMinutes
		totals.Price += s.Price
	}
	return totals
}

// BookingDraft is the in-progress selection of a user
type BookingDraft struct {
	Business *BusinessRef
	Staff    *StaffRef
	Services []Service // unique by ID, insertion order
	Schedule ScheduleChoice
	Notes    string
	Totals   DraftTotals
}

// HasService returns true if a service with id is selected
func (d BookingDraft) HasService(id string) bool {
	for _, s := range d.Services {
		if s.ID == id {
			return true
		}
	}
	return false
}

// ServiceIDs returns selected service ids in insertion order
func (d BookingDraft) ServiceIDs() []string {
	ids := make([]string, 0, len(d.Services))
	for _, s := range d.Services {
		ids = append(ids, s.ID)
	}
	return ids
}

// IsEmpty returns true if nothing has been selected yet
func (d BookingDraft) IsEmpty() bool {
	return d.Business == nil &&
		d.Staff == nil &&
		len(d.Services) == 0 &&
		d.Schedule.IsEmpty() &&
		d.Notes == ""
}

// Clone returns a deep copy so readers never share state with the engine
func (d BookingDraft) Clone() BookingDraft {
	c := d
	if d.Business != nil {
		b := *d.Business
		c.Business = &b
	}
	if d.Staff != nil {
		s := *d.Staff
		c.Staff = &s
	}
	c.Services = append([]Service(nil), d.Services...)
	return c
}

// Snapshot returns the persisted subset of the draft
func (d BookingDraft) Snapshot() DraftSnapshot {
	c := d.Clone()
	return DraftSnapshot{
		SchemaVersion:        DraftSchemaVersion,
		Business:             c.Business,
		Staff:                c.Staff,
		Services:             c.Services,
		TotalDurationMinutes: c.Totals.DurationMinutes,
		TotalPrice:           c.Totals.Price,
	}
}

// DraftSnapshot is the durable part of a draft.
// Schedule and notes are intentionally absent: availability may change between sessions.
type DraftSnapshot struct {
	SchemaVersion        int          `json:"schemaVersion"`
	Business             *BusinessRef `json:"businessRef,omitempty"`
	Staff                *StaffRef    `json:"staffRef,omitempty"`
	Services             []Service    `json:"services"`
	TotalDurationMinutes int          `json:"totalDurationMinutes"`
	TotalPrice           float64      `json:"totalPrice"`
}

// ToDraft rebuilds a draft from the snapshot, recomputing totals from services
func (s DraftSnapshot) ToDraft() BookingDraft {
	d := BookingDraft{
		Business: s.Business,
		Staff:    s.Staff,
		Services: make([]Service, 0, len(s.Services)),
	}
	for _, svc := range s.Services {
		if !d.HasService(svc.ID) {
			d.Services = append(d.Services, svc)
		}
	}
	d.Totals = ComputeTotals(d.Services)
	return d.Clone()
}
