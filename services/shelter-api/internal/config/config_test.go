package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "animal_shelter", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, time.Hour, cfg.Token.ExpiresIn)
	assert.Equal(t, "animal-shelter-api", cfg.Token.Issuer)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.PasswordResetEnabled())
	assert.False(t, cfg.StorageEnabled())
}

func TestLoad_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_URI")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ADMIN_EMAIL", "  Boss@Shelter.org ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("PASSWORD_RESET_TOKEN_SECRET", "reset")
	t.Setenv("S3_BUCKET_NAME", "pets")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "boss@shelter.org", cfg.AdminEmail)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.PasswordResetEnabled())
	assert.True(t, cfg.StorageEnabled())
}

func TestLoad_ResetSecretMustDiffer(t *testing.T) {
	setRequired(t)
	t.Setenv("PASSWORD_RESET_TOKEN_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}
