package usecase

import (
	"context"
	"errors"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

// AdminUsecase gathers dashboard figures and manages roles.
type AdminUsecase interface {
	GetStats(ctx context.Context) (*Stats, error)
	ChangeUserRole(ctx context.Context, actor Actor, userID string, role model.Role) (*model.User, error)
}

// Stats is a snapshot of the shelter's collections.
type Stats struct {
	Users             int64
	Admins            int64
	Pets              int64
	VaccinatedPets    int64
	Volunteers        map[model.VolunteerStatus]int64
	Donations         int64
	ReceivedDonations map[string]float64
}

var (
	ErrCannotChangeOwnRole = errors.New("cannot change own role")
	ErrInvalidRole         = errors.New("invalid role")
)

type adminUsecase struct {
	userRepo      repository.UserRepository
	petRepo       repository.PetRepository
	volunteerRepo repository.VolunteerRepository
	donationRepo  repository.DonationRepository
}

func NewAdminUsecase(
	userRepo repository.UserRepository,
	petRepo repository.PetRepository,
	volunteerRepo repository.VolunteerRepository,
	donationRepo repository.DonationRepository,
) AdminUsecase {
	return &adminUsecase{
		userRepo:      userRepo,
		petRepo:       petRepo,
		volunteerRepo: volunteerRepo,
		donationRepo:  donationRepo,
	}
}

func (u *adminUsecase) GetStats(ctx context.Context) (*Stats, error) {
	var (
		stats      Stats
		err        error
		adminRole  = model.RoleAdmin
		vaccinated = true
	)

	if stats.Users, err = u.userRepo.CountUsers(ctx, nil); err != nil {
		return nil, err
	}
	if stats.Admins, err = u.userRepo.CountUsers(ctx, &adminRole); err != nil {
		return nil, err
	}
	if stats.Pets, err = u.petRepo.CountPets(ctx, nil); err != nil {
		return nil, err
	}
	if stats.VaccinatedPets, err = u.petRepo.CountPets(ctx, &vaccinated); err != nil {
		return nil, err
	}
	if stats.Volunteers, err = u.volunteerRepo.CountVolunteersByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.Donations, err = u.donationRepo.CountDonations(ctx); err != nil {
		return nil, err
	}
	if stats.ReceivedDonations, err = u.donationRepo.SumDonationsByCurrency(ctx, model.DonationReceived); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (u *adminUsecase) ChangeUserRole(
	ctx context.Context,
	actor Actor,
	userID string,
	role model.Role,
) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if actor.UserID == userID {
		return nil, ErrCannotChangeOwnRole
	}

	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{Role: &role})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
