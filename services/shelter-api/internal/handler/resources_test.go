package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
)

type petBody struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Breed      string `json:"breed"`
	Vaccinated bool   `json:"vaccinated"`
}

func newPet(name, breed string) map[string]any {
	return map[string]any{
		"name":     name,
		"age":      "2 years",
		"breed":    breed,
		"story":    "Found near the river",
		"imageUrl": "https://images.example.org/" + name + ".jpg",
	}
}

func TestPets_CRUD(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.seedUser(t, "root@x.com", model.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/pets", newPet("Rex", "Beagle"), adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[petBody](t, rec)
	assert.False(t, created.Vaccinated)

	rec = s.do(t, http.MethodGet, "/api/pets/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rex", decode[petBody](t, rec).Name)

	rec = s.do(t, http.MethodPatch, "/api/pets/"+created.ID, map[string]any{"vaccinated": true}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[petBody](t, rec)
	assert.True(t, updated.Vaccinated)
	assert.Equal(t, "Beagle", updated.Breed)

	rec = s.do(t, http.MethodPut, "/api/pets/"+created.ID, map[string]any{}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", decode[msgBody](t, rec).Msg)

	rec = s.do(t, http.MethodDelete, "/api/pets/"+created.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pet removed", decode[msgBody](t, rec).Msg)

	rec = s.do(t, http.MethodGet, "/api/pets/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pet not found", decode[msgBody](t, rec).Msg)

	rec = s.do(t, http.MethodGet, "/api/pets/not-an-object-id", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pet not found", decode[msgBody](t, rec).Msg)
}

func TestPets_CreateValidation(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.seedUser(t, "root@x.com", model.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/pets", map[string]any{"name": "Rex"}, adminToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ElementsMatch(t, []string{"age", "breed", "story", "imageUrl"}, fieldsOf(decode[errorsBody](t, rec)))
}

func TestPets_ListFiltersAndQuery(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.seedUser(t, "root@x.com", model.RoleAdmin)

	for _, pet := range []map[string]any{newPet("Rex", "Beagle"), newPet("Mia", "Tabby"), newPet("Max", "Beagle")} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/pets", pet, adminToken).Code)
	}

	rec := s.do(t, http.MethodGet, "/api/pets", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]petBody](t, rec), 3)

	rec = s.do(t, http.MethodGet, "/api/pets?breed=Beagle", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]petBody](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/api/pets?sort=name&order=desc&limit=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	pets := decode[[]petBody](t, rec)
	require.Len(t, pets, 2)
	assert.Equal(t, "Rex", pets[0].Name)
	assert.Equal(t, "Mia", pets[1].Name)

	for _, query := range []string{"limit=0", "limit=101", "limit=x", "offset=-1", "offset=18446744073709551615", "sort=password", "order=sideways", "vaccinated=maybe"} {
		rec = s.do(t, http.MethodGet, "/api/pets?"+query, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestPets_ImageUploadDisabled(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.seedUser(t, "root@x.com", model.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/pets/image-upload-url", map[string]any{"contentType": "image/png"}, adminToken)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUsers_SelfOrAdmin(t *testing.T) {
	s := newTestServer(t)
	alice, aliceToken := s.seedUser(t, "alice@x.com", model.RoleUser)
	bob, bobToken := s.seedUser(t, "bob@x.com", model.RoleUser)
	_, adminToken := s.seedUser(t, "root@x.com", model.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/users/me", nil, "").Code)

	rec := s.do(t, http.MethodGet, "/api/users/me", nil, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"alice@x.com"`)
	assert.NotContains(t, rec.Body.String(), "password")

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/users", nil, aliceToken).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/users?role=user", nil, adminToken).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/users?role=owner", nil, adminToken).Code)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/users/"+alice.ID.Hex(), nil, bobToken).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/users/"+alice.ID.Hex(), nil, adminToken).Code)

	rec = s.do(t, http.MethodPut, "/api/users/"+alice.ID.Hex(), map[string]any{"email": "bob@x.com"}, aliceToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use", decode[msgBody](t, rec).Msg)

	rec = s.do(t, http.MethodPut, "/api/users/"+alice.ID.Hex(), map[string]any{"name": "Alice Liddell"}, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Alice Liddell"`)

	rec = s.do(t, http.MethodDelete, "/api/users/"+bob.ID.Hex(), nil, aliceToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/users/"+bob.ID.Hex(), nil, bobToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User removed", decode[msgBody](t, rec).Msg)

	rec = s.do(t, http.MethodGet, "/api/users/"+bob.ID.Hex(), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVolunteers(t *testing.T) {
	s := newTestServer(t)
	user, userToken := s.seedUser(t, "alice@x.com", model.RoleUser)
	_, adminToken := s.seedUser(t, "root@x.com", model.RoleAdmin)

	type volunteerBody struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		UserID string `json:"userId"`
	}

	rec := s.do(t, http.MethodPost, "/api/volunteers", map[string]any{
		"name": "Sam", "email": "sam@x.com", "interests": []string{"walking"},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	anonymous := decode[volunteerBody](t, rec)
	assert.Equal(t, "pending", anonymous.Status)
	assert.Empty(t, anonymous.UserID)

	rec = s.do(t, http.MethodPost, "/api/volunteers", map[string]any{"name": "Alice", "email": "alice@x.com"}, userToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, user.ID.Hex(), decode[volunteerBody](t, rec).UserID)

	rec = s.do(t, http.MethodPost, "/api/volunteers", map[string]any{"name": "Nope"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/volunteers", nil, userToken).Code)

	rec = s.do(t, http.MethodPut, "/api/volunteers/"+anonymous.ID, map[string]any{"status": "approved"}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", decode[volunteerBody](t, rec).Status)

	rec = s.do(t, http.MethodPut, "/api/volunteers/"+anonymous.ID, map[string]any{"status": "hired"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/volunteers?status=approved", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]volunteerBody](t, rec), 1)

	rec = s.do(t, http.MethodDelete, "/api/volunteers/"+anonymous.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/volunteers/"+anonymous.ID, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Volunteer not found", decode[msgBody](t, rec).Msg)
}

func TestDonations(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.seedUser(t, "root@x.com", model.RoleAdmin)

	type donationBody struct {
		ID        string  `json:"id"`
		Amount    float64 `json:"amount"`
		Currency  string  `json:"currency"`
		Status    string  `json:"status"`
		ReceiptID string  `json:"receiptId"`
	}

	rec := s.do(t, http.MethodPost, "/api/donations", map[string]any{
		"donorName": "Pat", "email": "pat@x.com", "amount": 20,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donation := decode[donationBody](t, rec)
	assert.Equal(t, "USD", donation.Currency)
	assert.Equal(t, "pledged", donation.Status)
	assert.NotEmpty(t, donation.ReceiptID)

	for _, body := range []map[string]any{
		{"donorName": "Pat", "email": "pat@x.com", "amount": 0},
		{"donorName": "Pat", "email": "pat@x.com", "amount": -5},
		{"donorName": "Pat", "email": "pat@x.com", "amount": 5, "currency": "XXXX"},
		{"donorName": "Pat", "email": "not-an-email", "amount": 5},
	} {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/donations", body, "").Code, body)
	}

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/donations", nil, "").Code)

	rec = s.do(t, http.MethodPut, "/api/donations/"+donation.ID, map[string]any{"status": "received"}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"receivedDonations":{"USD":20}`)

	rec = s.do(t, http.MethodGet, "/api/donations?status=received&email=PAT@x.com", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]donationBody](t, rec), 1)

	rec = s.do(t, http.MethodDelete, "/api/donations/"+donation.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Donation removed", decode[msgBody](t, rec).Msg)
}
