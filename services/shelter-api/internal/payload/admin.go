package payload

import (
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
)

type StatsResponse struct {
	Users             int64                           `json:"users"`
	Admins            int64                           `json:"admins"`
	Pets              int64                           `json:"pets"`
	VaccinatedPets    int64                           `json:"vaccinatedPets"`
	Volunteers        map[model.VolunteerStatus]int64 `json:"volunteers"`
	Donations         int64                           `json:"donations"`
	ReceivedDonations map[string]float64              `json:"receivedDonations"`
}
