package clinicapi

// Doctor is a roster entry as served by GET /api/doctors.
type Doctor struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Experience      int      `json:"experience"`
	Photo           string   `json:"photo"`
	Bio             string   `json:"bio"`
	Qualifications  []string `json:"qualifications"`
	Specializations []string `json:"specializations"`
}

// Appointment is the server's view of a booking. The front end only ever
// holds a snapshot of it.
type Appointment struct {
	ID          int    `json:"id"`
	PatientName string `json:"patientName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	DoctorID    int    `json:"doctor_id"`
	Doctor      string `json:"doctor"`
	Message     string `json:"message,omitempty"`
	Status      string `json:"status"`
}

// CreateAppointmentRequest is the JSON body of POST /api/appointments.
type CreateAppointmentRequest struct {
	PatientName string `json:"patientName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	DoctorID    int    `json:"doctor_id"`
	Message     string `json:"message"`
}

type availableTimesQuery struct {
	DoctorID int    `url:"doctor_id"`
	Date     string `url:"date"`
}

type availableTimesResponse struct {
	AvailableTimes []string `json:"available_times"`
}

type rescheduleQuery struct {
	Date string `url:"date"`
	Time string `url:"time"`
}

// errorBody covers both error shapes the API is known to return.
type errorBody struct {
	Detail  any `json:"detail"`
	Message any `json:"message"`
}
