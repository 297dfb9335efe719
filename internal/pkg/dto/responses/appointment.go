package responses

type Meeting struct {
	AppointmentID string `json:"appointmentId"`
	MeetingID     string `json:"meetingId"`
	MeetingURL    string `json:"meetingUrl"`
}
