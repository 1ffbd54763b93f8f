package domain

import "time"

// CheckInType distinguishes entry, exit, and system-forced exit records.
type CheckInType string

const (
	CheckInTypeIn      CheckInType = "CHECK_IN"
	CheckInTypeOut     CheckInType = "CHECK_OUT"
	CheckInTypeAutoOut CheckInType = "AUTO_CHECK_OUT"
)

// CheckInMethod records how the check-in was captured.
type CheckInMethod string

const (
	CheckInMethodQRCode CheckInMethod = "QR_CODE"
	CheckInMethodNFC    CheckInMethod = "NFC"
	CheckInMethodManual CheckInMethod = "MANUAL"
	CheckInMethodAuto   CheckInMethod = "AUTO"
)

// CheckIn is a single entry or exit record at a venue. An open visit is a
// CHECK_IN row with no matching CHECK_OUT yet.
type CheckIn struct {
	ID            int64
	CheckInNo     string
	VenueID       int64
	UserID        int64
	UserName      string
	ReservationID *int64
	Type          CheckInType
	Method        CheckInMethod
	EarnedPoints  int
	OccurredAt    time.Time
	CreatedAt     time.Time
}
