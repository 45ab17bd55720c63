package services

import (
	"errors"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/services/repositories"
	"github.com/lac-hong-legacy/lecture_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const PROFILE_SVC = "profile_svc"

var (
	errAdminOnlyField  = errors.New("role and guardian can only be changed by an admin")
	errInvalidGuardian = errors.New("guardian must be an existing parent profile")
)

type ProfileService struct {
	appContext.DefaultService

	db   DatabaseProvider
	repo *repositories.ProfileRepository
}

func (svc ProfileService) Id() string {
	return PROFILE_SVC
}

func NewProfileService(db DatabaseProvider) *ProfileService {
	return &ProfileService{db: db, repo: repositories.NewProfileRepository(db.Db())}
}

func (svc *ProfileService) Start() error {
	svc.db = svc.Service(DATABASE_SVC).(DatabaseProvider)
	svc.repo = repositories.NewProfileRepository(svc.db.Db())
	return nil
}

// GetProfile returns the profile of userID. A user reading their own missing
// profile gets one provisioned from the token.
func (svc *ProfileService) GetProfile(actor shared.Actor, userID string) (*dto.ProfileResponse, error) {
	if err := checkReadAccess(svc.repo, actor, userID); err != nil {
		return nil, err
	}

	profile, err := svc.repo.GetProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) && actor.ID == userID {
		profile, err = svc.provision(actor)
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := toProfileResponse(*profile)
	return &resp, nil
}

func (svc *ProfileService) UpdateProfile(actor shared.Actor, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if actor.ID != userID && !actor.IsAdmin() {
		return nil, shared.NewForbiddenError(errNotYourRecord, "Access denied")
	}
	if req.TouchesPrivilegedFields() && !actor.IsAdmin() {
		return nil, shared.NewForbiddenError(errAdminOnlyField, "Only an admin can change role or guardian")
	}

	profile, err := svc.repo.GetProfile(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) && actor.ID == userID {
		profile, err = svc.provision(actor)
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.GradeLevel != nil {
		profile.GradeLevel = *req.GradeLevel
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.GuardianID != nil {
		if *req.GuardianID == "" {
			profile.GuardianID = nil
		} else {
			if err := svc.validateGuardian(*req.GuardianID); err != nil {
				return nil, err
			}
			guardianID := *req.GuardianID
			profile.GuardianID = &guardianID
		}
	}

	if err := svc.repo.UpdateProfile(profile); err != nil {
		return nil, svc.db.HandleError(err)
	}

	log.WithFields(log.Fields{"user_id": userID, "actor_id": actor.ID}).Info("Profile updated")
	resp := toProfileResponse(*profile)
	return &resp, nil
}

// ListStudents returns the students followed by a guardian.
func (svc *ProfileService) ListStudents(actor shared.Actor, guardianID string) ([]dto.ProfileResponse, error) {
	if actor.ID != guardianID && !actor.IsAdmin() {
		return nil, shared.NewForbiddenError(errNotYourRecord, "Access denied")
	}

	profiles, err := svc.repo.ListWards(guardianID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, toProfileResponse(p))
	}
	return resp, nil
}

func (svc *ProfileService) provision(actor shared.Actor) (*model.Profile, error) {
	role := actor.Role
	if role == "" {
		role = shared.RoleStudent
	}
	profile := &model.Profile{
		ID:          actor.ID,
		DisplayName: "New learner",
		Role:        role,
	}
	if err := svc.repo.CreateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (svc *ProfileService) validateGuardian(guardianID string) error {
	guardian, err := svc.repo.GetProfile(guardianID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewBadRequestError(errInvalidGuardian, "Guardian not found")
	}
	if err != nil {
		return svc.db.HandleError(err)
	}
	if guardian.Role != shared.RoleParent {
		return shared.NewBadRequestError(errInvalidGuardian, "Guardian must be a parent")
	}
	return nil
}

func toProfileResponse(p model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Role:        p.Role,
		GradeLevel:  p.GradeLevel,
		GuardianID:  p.GuardianID,
		AvatarURL:   p.AvatarURL,
		UpdatedAt:   p.UpdatedAt,
	}
}
