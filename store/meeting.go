package store

// MeetingStatus is the scheduling state of a meeting.
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "PROGRAMADA"
	MeetingStatusHeld      MeetingStatus = "REALIZADA"
	MeetingStatusCancelled MeetingStatus = "CANCELADA"
)

type Meeting struct {
	ID            int32
	CondominiumID int32
	Topic         string
	ScheduledTs   int64
	Location      string
	Description   *string
	Status        MeetingStatus
	CreatedTs     int64
	UpdatedTs     int64

	// Populated by ListMeetings with a JOIN.
	CondominiumName string
}

type FindMeeting struct {
	ID            *int32
	CondominiumID *int32
}
