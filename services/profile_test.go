package services

import (
	"net/http"
	"testing"

	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProfileService_ProvisionsOwnProfile(t *testing.T) {
	profiles := NewProfileService(newTestDatabase(t))

	profile, err := profiles.GetProfile(student, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, profile.ID)
	assert.Equal(t, shared.RoleStudent, profile.Role)
	assert.Equal(t, "New learner", profile.DisplayName)

	// someone else's missing profile is not provisioned
	_, err = profiles.GetProfile(admin, "nobody")
	requireStatus(t, err, http.StatusNotFound)
}

func TestProfileService_UpdateOwnProfile(t *testing.T) {
	profiles := NewProfileService(newTestDatabase(t))
	grade := 7

	profile, err := profiles.UpdateProfile(student, student.ID, dto.UpdateProfileRequest{
		DisplayName: strPtr("  Linh Tran "),
		GradeLevel:  &grade,
	})
	require.NoError(t, err)
	assert.Equal(t, "Linh Tran", profile.DisplayName)
	assert.Equal(t, 7, profile.GradeLevel)

	fetched, err := profiles.GetProfile(student, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linh Tran", fetched.DisplayName)
}

func TestProfileService_PrivilegedFieldsNeedAdmin(t *testing.T) {
	profiles := NewProfileService(newTestDatabase(t))

	_, err := profiles.UpdateProfile(student, student.ID, dto.UpdateProfileRequest{Role: strPtr(shared.RoleAdmin)})
	requireStatus(t, err, http.StatusForbidden)

	_, err = profiles.UpdateProfile(student, "student-2", dto.UpdateProfileRequest{DisplayName: strPtr("x")})
	requireStatus(t, err, http.StatusForbidden)
}

func TestProfileService_GuardianLink(t *testing.T) {
	profiles := NewProfileService(newTestDatabase(t))

	_, err := profiles.GetProfile(student, student.ID)
	require.NoError(t, err)
	other := shared.Actor{ID: "student-2", Role: shared.RoleStudent}
	_, err = profiles.GetProfile(other, other.ID)
	require.NoError(t, err)

	// a student cannot be a guardian
	_, err = profiles.UpdateProfile(admin, student.ID, dto.UpdateProfileRequest{GuardianID: strPtr(other.ID)})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = profiles.UpdateProfile(admin, student.ID, dto.UpdateProfileRequest{GuardianID: strPtr("missing")})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = profiles.GetProfile(parent, parent.ID)
	require.NoError(t, err)
	updated, err := profiles.UpdateProfile(admin, student.ID, dto.UpdateProfileRequest{GuardianID: strPtr(parent.ID)})
	require.NoError(t, err)
	require.NotNil(t, updated.GuardianID)
	assert.Equal(t, parent.ID, *updated.GuardianID)

	ward, err := profiles.GetProfile(parent, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, ward.ID)

	_, err = profiles.GetProfile(parent, other.ID)
	requireStatus(t, err, http.StatusForbidden)

	students, err := profiles.ListStudents(parent, parent.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)

	_, err = profiles.ListStudents(other, parent.ID)
	requireStatus(t, err, http.StatusForbidden)

	// an empty guardian id clears the link
	cleared, err := profiles.UpdateProfile(admin, student.ID, dto.UpdateProfileRequest{GuardianID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.GuardianID)
}
