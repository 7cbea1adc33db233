package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypher125/siwes/internal/domain"
)

func validRegistration(role domain.Role) domain.RegisterRequest {
	req := domain.RegisterRequest{
		Email:     "person@yabatech.edu.ng",
		Password:  "longenough",
		FirstName: "Ada",
		LastName:  "Obi",
		Role:      role,
	}
	switch role {
	case domain.RoleStudent:
		req.MatricNo = "F/ND/22/3210113"
		req.Department = "Computer Science"
		req.Level = "ND1"
	case domain.RoleSupervisor:
		req.Department = "Computer Science"
	case domain.RoleAdmin:
		req.AdminCode = "SECRET"
	}
	return req
}

func TestRegistrationPerRole(t *testing.T) {
	v := New()
	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleSupervisor, domain.RoleAdmin} {
		assert.NoError(t, v.Validate(validRegistration(role)), string(role))
	}
}

func TestRoleConditionalFields(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		mutate  func(*domain.RegisterRequest)
		role    domain.Role
		message string
	}{
		{
			name:    "student without matric number",
			role:    domain.RoleStudent,
			mutate:  func(r *domain.RegisterRequest) { r.MatricNo = "" },
			message: "matric_number is required",
		},
		{
			name:    "student without level",
			role:    domain.RoleStudent,
			mutate:  func(r *domain.RegisterRequest) { r.Level = "" },
			message: "level is required",
		},
		{
			name:    "supervisor without department",
			role:    domain.RoleSupervisor,
			mutate:  func(r *domain.RegisterRequest) { r.Department = "" },
			message: "department is required",
		},
		{
			name:    "admin without admin code",
			role:    domain.RoleAdmin,
			mutate:  func(r *domain.RegisterRequest) { r.AdminCode = "" },
			message: "admin_code is required",
		},
		{
			name:    "malformed matric number",
			role:    domain.RoleStudent,
			mutate:  func(r *domain.RegisterRequest) { r.MatricNo = "3210113" },
			message: "matric_number must be a valid matriculation number",
		},
		{
			name:    "short password",
			role:    domain.RoleAdmin,
			mutate:  func(r *domain.RegisterRequest) { r.Password = "short" },
			message: "password must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration(tt.role)
			tt.mutate(&req)
			err := v.Validate(req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestAdminNeedsNoDepartment(t *testing.T) {
	v := New()
	req := validRegistration(domain.RoleAdmin)
	req.Department = ""
	assert.NoError(t, v.Validate(req))
}

func TestMatricTag(t *testing.T) {
	type form struct {
		Matric string `json:"matric" validate:"matric"`
	}
	v := New()

	for _, ok := range []string{"F/ND/22/3210113", "F/HND/23/1020044", "c/nd/21/55555"} {
		assert.NoError(t, v.Validate(form{Matric: ok}), ok)
	}
	for _, bad := range []string{"", "F-ND-22-3210113", "F/ND/22", "F/ND/22/12", "FFFF/ND/22/3210113"} {
		assert.Error(t, v.Validate(form{Matric: bad}), bad)
	}
}

func TestStaffIDTag(t *testing.T) {
	type form struct {
		StaffID string `json:"staff_id" validate:"staffid"`
	}
	v := New()

	for _, ok := range []string{"YCT-1042", "STF/0231", "A1B2C3"} {
		assert.NoError(t, v.Validate(form{StaffID: ok}), ok)
	}
	for _, bad := range []string{"", "ab", "YCT--1042", "-YCT1042", "YCT 1042"} {
		assert.Error(t, v.Validate(form{StaffID: bad}), bad)
	}
}

func TestSchoolEmailTag(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"schoolemail"`
	}
	v := New()

	assert.NoError(t, v.Validate(form{Email: "ada@yabatech.edu.ng"}))
	assert.NoError(t, v.Validate(form{Email: "ADA@YABATECH.EDU.NG"}))
	assert.Error(t, v.Validate(form{Email: "ada@gmail.com"}))
}

func TestLoginForms(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(domain.LoginRequest{Email: "a@yabatech.edu.ng", Password: "pw"}))

	err := v.Validate(domain.LoginRequest{Email: "not-an-email", Password: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")

	err = v.Validate(domain.StaffLoginRequest{StaffID: "x", Password: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staff_id must be a valid staff ID")

	err = v.Validate(domain.SurnameLoginRequest{Surname: "O", Password: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surname must be at least 2 characters")
}
