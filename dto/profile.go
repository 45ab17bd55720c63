package dto

import "time"

type ProfileResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	GradeLevel  int       `json:"grade_level"`
	GuardianID  *string   `json:"guardian_id,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateProfileRequest is a partial update; nil fields are left untouched.
// Role and GuardianID may only be changed by an admin.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	GradeLevel  *int    `json:"grade_level,omitempty" validate:"omitempty,min=1,max=12"`
	AvatarURL   *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Role        *string `json:"role,omitempty" validate:"omitempty,role"`
	GuardianID  *string `json:"guardian_id,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(r)
}

func (r UpdateProfileRequest) TouchesPrivilegedFields() bool {
	return r.Role != nil || r.GuardianID != nil
}

type IssueTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
