package domain

type SessionStatus string

const (
	SessionActive  SessionStatus = "active"
	SessionPaused  SessionStatus = "paused"
	SessionStopped SessionStatus = "stopped"
)

// IsOpen reports whether the status counts toward the single open session
// allowed per account.
func (s SessionStatus) IsOpen() bool {
	return s == SessionActive || s == SessionPaused
}

type SessionEvent string

const (
	EventPause  SessionEvent = "pause"
	EventResume SessionEvent = "resume"
	EventStop   SessionEvent = "stop"
)

type NoteType string

const (
	NoteStart   NoteType = "start"
	NoteRuntime NoteType = "runtime"
)

// ValidNoteTypes is the canonical set of accepted note type strings.
var ValidNoteTypes = map[NoteType]bool{
	NoteStart:   true,
	NoteRuntime: true,
}

type LeaveType string

const (
	LeaveVacation LeaveType = "vacation"
	LeaveSick     LeaveType = "sick"
	LeaveOther    LeaveType = "other"
)

// ValidLeaveTypes is the canonical set of accepted leave type strings.
var ValidLeaveTypes = map[LeaveType]bool{
	LeaveVacation: true,
	LeaveSick:     true,
	LeaveOther:    true,
}

type SummaryMode string

const (
	ModeDay   SummaryMode = "day"
	ModeWeek  SummaryMode = "week"
	ModeMonth SummaryMode = "month"
	ModeYear  SummaryMode = "year"
)

// ValidSummaryModes is the canonical set of accepted summary modes.
var ValidSummaryModes = map[SummaryMode]bool{
	ModeDay:   true,
	ModeWeek:  true,
	ModeMonth: true,
	ModeYear:  true,
}

type TimeFormat string

const (
	FormatHHMM    TimeFormat = "hh:mm"
	FormatDecimal TimeFormat = "decimal"
)
