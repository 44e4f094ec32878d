package model

type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Timezone string
	Token    string
}

type Event struct {
	ID          string
	Name        string
	Duration    int
	Description string
	Color       string
	UserID      string
}

// AvailabilitySlot is one open window in a weekly schedule.
type AvailabilitySlot struct {
	Day       string `json:"day" xml:"day"`
	StartTime string `json:"startTime" xml:"startTime"`
	EndTime   string `json:"endTime" xml:"endTime"`
}

// ScheduleRow is a schedule as stored: availability kept as the raw
// serialized blob, decoded only at the operation layer.
type ScheduleRow struct {
	ID           int64
	UserID       string
	Availability string
}

type Appointment struct {
	ID           string
	EventID      string
	UserID       string
	InviteeEmail string
	StartTime    string
	EndTime      string
	Status       string
}

// Patch types carry partial updates. An empty string (or zero duration)
// means the field was not supplied; Description is a pointer so an update
// can set it to empty.
type UserPatch struct {
	Name     string
	Email    string
	Password string
	Timezone string
}

type EventPatch struct {
	Name        string
	Duration    int
	Description *string
	Color       string
}

type AppointmentPatch struct {
	EventID      string
	InviteeEmail string
	StartTime    string
	EndTime      string
	Status       string
}
