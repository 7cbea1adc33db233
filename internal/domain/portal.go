package domain

// Profile and logbook shapes, matching the upstream API's wire format.
// The portal passes these through; grading rules live upstream.

type StudentProfile struct {
	ID             int64    `json:"id"`
	User           Identity `json:"user"`
	Department     string   `json:"department"`
	MatricNumber   string   `json:"matric_number"`
	Level          string   `json:"level"`
	PhoneNumber    string   `json:"phone_number"`
	ProfilePicture *string  `json:"profile_picture"`
	IsApproved     bool     `json:"is_approved"`
}

type SupervisorProfile struct {
	ID             int64    `json:"id"`
	User           Identity `json:"user"`
	Department     string   `json:"department"`
	Title          string   `json:"title"`
	PhoneNumber    string   `json:"phone_number"`
	ProfilePicture *string  `json:"profile_picture"`
	IsApproved     bool     `json:"is_approved"`
}

type LogbookEntry struct {
	ID                int64   `json:"id"`
	Date              string  `json:"date"`
	Activities        string  `json:"activities"`
	SkillsAcquired    string  `json:"skills_acquired"`
	Challenges        string  `json:"challenges"`
	SupervisorComment *string `json:"supervisor_comment"`
	IsApproved        bool    `json:"is_approved"`
}

// NewLogbookEntry is the student submission form.
type NewLogbookEntry struct {
	Date           string `json:"date" validate:"required"`
	Activities     string `json:"activities" validate:"required,min=10"`
	SkillsAcquired string `json:"skills_acquired" validate:"required"`
	Challenges     string `json:"challenges,omitempty"`
}

// EntryReview is the supervisor's verdict on a logbook entry.
type EntryReview struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected pending"`
	Feedback string `json:"feedback" validate:"required"`
}

type Evaluation struct {
	ID                 int64  `json:"id"`
	TechnicalSkills    int    `json:"technical_skills"`
	CommunicationSkill int    `json:"communication_skills"`
	Teamwork           int    `json:"teamwork"`
	Initiative         int    `json:"initiative"`
	Punctuality        int    `json:"punctuality"`
	OverallPerformance int    `json:"overall_performance"`
	Comments           string `json:"comments"`
	DateSubmitted      string `json:"date_submitted"`
}

type Assignment struct {
	ID         int64 `json:"id"`
	Student    int64 `json:"student"`
	Supervisor int64 `json:"supervisor"`
}

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
