package domain

// LoginRequest is the credential login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// StaffLoginRequest is the supervisor staff-ID login form. The staff ID
// is resolved to an email before the credential exchange.
type StaffLoginRequest struct {
	StaffID  string `json:"staff_id" form:"staff_id" validate:"required,staffid"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SurnameLoginRequest is the student surname login form. The password
// field carries the matriculation-style identifier used by the lookup.
type SurnameLoginRequest struct {
	Surname  string `json:"surname" form:"surname" validate:"required,min=2"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegisterRequest covers all three registration forms; the role selects
// the upstream endpoint and which of the optional fields are required.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required,min=2"`
	LastName    string `json:"last_name" validate:"required,min=2"`
	Role        Role   `json:"role" validate:"required,oneof=student supervisor admin"`
	AdminCode   string `json:"admin_code,omitempty" validate:"required_if=Role admin"`
	MatricNo    string `json:"matric_number,omitempty" validate:"required_if=Role student,omitempty,matric"`
	Department  string `json:"department,omitempty" validate:"required_unless=Role admin"`
	Level       string `json:"level,omitempty" validate:"required_if=Role student"`
	Title       string `json:"title,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// LoginResult is what every login variant returns across the service
// boundary. Failures carry a human-readable message instead of an error.
type LoginResult struct {
	Success bool   `json:"success"`
	Role    Role   `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}

// RegisterResult mirrors LoginResult for registration; it never carries
// a role because registration does not authenticate.
type RegisterResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
