package responses

type ReminderJob struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
}
