package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/shared/storage"
)

// PetUsecase manages adoption listings.
type PetUsecase interface {
	CreatePet(ctx context.Context, params CreatePetParams) (*model.Pet, error)
	GetPet(ctx context.Context, id string) (*model.Pet, error)
	ListPets(ctx context.Context, params repository.FilterPetsParams) ([]*model.Pet, error)
	UpdatePet(ctx context.Context, id string, params repository.UpdatePetParams) (*model.Pet, error)
	DeletePet(ctx context.Context, id string) (*model.Pet, error)
	CreateImageUploadURL(ctx context.Context, contentType string) (*storage.PresignedUpload, error)
}

// CreatePetParams defines the parameters for listing a new pet.
type CreatePetParams struct {
	Name       string
	Age        string
	Breed      string
	Vaccinated bool
	Story      string
	ImageURL   string
}

var (
	ErrPetNotFound          = errors.New("pet not found")
	ErrImageStorageDisabled = errors.New("image storage is not configured")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// imageExtensions maps accepted upload content types to object key extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type petUsecase struct {
	petRepo   repository.PetRepository
	presigner ImagePresigner
}

// NewPetUsecase creates the pet usecase. presigner may be nil when uploads are not
// configured.
func NewPetUsecase(petRepo repository.PetRepository, presigner ImagePresigner) PetUsecase {
	return &petUsecase{
		petRepo:   petRepo,
		presigner: presigner,
	}
}

func (u *petUsecase) CreatePet(ctx context.Context, params CreatePetParams) (*model.Pet, error) {
	return u.petRepo.CreatePet(ctx, &model.Pet{
		Name:       strings.TrimSpace(params.Name),
		Age:        strings.TrimSpace(params.Age),
		Breed:      strings.TrimSpace(params.Breed),
		Vaccinated: params.Vaccinated,
		Story:      params.Story,
		ImageURL:   strings.TrimSpace(params.ImageURL),
	})
}

func (u *petUsecase) GetPet(ctx context.Context, id string) (*model.Pet, error) {
	pet, err := u.petRepo.GetPet(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	return pet, nil
}

func (u *petUsecase) ListPets(ctx context.Context, params repository.FilterPetsParams) ([]*model.Pet, error) {
	return u.petRepo.ListPets(ctx, params)
}

func (u *petUsecase) UpdatePet(ctx context.Context, id string, params repository.UpdatePetParams) (*model.Pet, error) {
	pet, err := u.petRepo.UpdatePet(ctx, id, params)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrPetNotFound
		case errors.Is(err, repository.ErrNothingToUpdate):
			return nil, ErrNothingToUpdate
		}
		return nil, err
	}

	return pet, nil
}

func (u *petUsecase) DeletePet(ctx context.Context, id string) (*model.Pet, error) {
	pet, err := u.petRepo.DeletePet(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	return pet, nil
}

func (u *petUsecase) CreateImageUploadURL(ctx context.Context, contentType string) (*storage.PresignedUpload, error) {
	if u.presigner == nil {
		return nil, ErrImageStorageDisabled
	}

	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	return u.presigner.PresignUpload(ctx, "pets/"+uuid.NewString()+ext, contentType)
}
