package model

// AdminDashboard aggregates platform-wide counts plus the five most recently
// created appointments, in reverse insertion order.
type AdminDashboard struct {
	Doctors            int            `json:"doctors"`
	Appointments       int            `json:"appointments"`
	Patients           int            `json:"patients"`
	LatestAppointments []*Appointment `json:"latest_appointments"`
}

// DoctorDashboard aggregates a single doctor's activity. Earnings sums the
// amount of every appointment that is completed or paid.
type DoctorDashboard struct {
	Earnings           float64        `json:"earnings"`
	Appointments       int            `json:"appointments"`
	Patients           int            `json:"patients"`
	LatestAppointments []*Appointment `json:"latest_appointments"`
}
