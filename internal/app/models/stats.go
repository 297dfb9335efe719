package models

type DashboardStats struct {
	TotalUsers                int            `json:"totalUsers"`
	UsersByRole               map[string]int `json:"usersByRole"`
	DoctorsByStatus           map[string]int `json:"doctorsByStatus"`
	PendingDoctorApplications int            `json:"pendingDoctorApplications"`
	TotalAppointments         int            `json:"totalAppointments"`
	AppointmentsByStatus      map[string]int `json:"appointmentsByStatus"`
	PaymentsByStatus          map[string]int `json:"paymentsByStatus"`
	TotalRevenue              float64        `json:"totalRevenue"`
	DocumentsByStatus         map[string]int `json:"documentsByStatus"`
	PendingDoctorDocuments    int            `json:"pendingDoctorDocuments"`
}
