package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

// VolunteerUsecase handles volunteer signups and their review by admins.
type VolunteerUsecase interface {
	SignUp(ctx context.Context, params SignUpVolunteerParams) (*model.Volunteer, error)
	GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	ListVolunteers(ctx context.Context, params repository.FilterVolunteersParams) ([]*model.Volunteer, error)
	UpdateVolunteer(ctx context.Context, id string, params repository.UpdateVolunteerParams) (*model.Volunteer, error)
	DeleteVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
}

// SignUpVolunteerParams defines the parameters of the public signup form. UserID is set
// when the submitter is signed in.
type SignUpVolunteerParams struct {
	Name         string
	Email        string
	Phone        string
	Availability string
	Interests    []string
	Message      string
	UserID       string
}

var ErrVolunteerNotFound = errors.New("volunteer not found")

type volunteerUsecase struct {
	volunteerRepo repository.VolunteerRepository
	notifier      Notifier
}

func NewVolunteerUsecase(volunteerRepo repository.VolunteerRepository, notifier Notifier) VolunteerUsecase {
	return &volunteerUsecase{
		volunteerRepo: volunteerRepo,
		notifier:      notifier,
	}
}

func (u *volunteerUsecase) SignUp(ctx context.Context, params SignUpVolunteerParams) (*model.Volunteer, error) {
	interests := make([]string, 0, len(params.Interests))
	for _, interest := range params.Interests {
		if interest = strings.TrimSpace(interest); interest != "" {
			interests = append(interests, interest)
		}
	}

	volunteer, err := u.volunteerRepo.CreateVolunteer(ctx, &model.Volunteer{
		Name:         strings.TrimSpace(params.Name),
		Email:        normalizeEmail(params.Email),
		Phone:        strings.TrimSpace(params.Phone),
		Availability: strings.TrimSpace(params.Availability),
		Interests:    interests,
		Message:      params.Message,
		Status:       model.VolunteerPending,
		UserID:       params.UserID,
	})
	if err != nil {
		return nil, err
	}

	u.sendConfirmation(ctx, volunteer)

	return volunteer, nil
}

// sendConfirmation mails the volunteer. Failures are logged and do not fail the signup.
func (u *volunteerUsecase) sendConfirmation(ctx context.Context, volunteer *model.Volunteer) {
	logger := zerolog.Ctx(ctx)

	body, err := renderMail("volunteer_confirmation", volunteer)
	if err == nil {
		err = u.notifier.SendHTML([]string{volunteer.Email}, "Thanks for volunteering!", body)
	}
	if err != nil {
		logger.Warn().Err(err).Str("volunteer_id", volunteer.ID.Hex()).Msg("failed to send volunteer confirmation")
	}
}

func (u *volunteerUsecase) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	volunteer, err := u.volunteerRepo.GetVolunteer(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrVolunteerNotFound
		}
		return nil, err
	}

	return volunteer, nil
}

func (u *volunteerUsecase) ListVolunteers(
	ctx context.Context,
	params repository.FilterVolunteersParams,
) ([]*model.Volunteer, error) {
	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		params.Email = &email
	}

	return u.volunteerRepo.ListVolunteers(ctx, params)
}

func (u *volunteerUsecase) UpdateVolunteer(
	ctx context.Context,
	id string,
	params repository.UpdateVolunteerParams,
) (*model.Volunteer, error) {
	volunteer, err := u.volunteerRepo.UpdateVolunteer(ctx, id, params)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrVolunteerNotFound
		case errors.Is(err, repository.ErrNothingToUpdate):
			return nil, ErrNothingToUpdate
		}
		return nil, err
	}

	return volunteer, nil
}

func (u *volunteerUsecase) DeleteVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	volunteer, err := u.volunteerRepo.DeleteVolunteer(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrVolunteerNotFound
		}
		return nil, err
	}

	return volunteer, nil
}
