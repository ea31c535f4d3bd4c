package discovery

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsulRegistry_RegisterAndDeregister(t *testing.T) {
	var (
		registered map[string]any
		deregPath  string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/agent/service/register":
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &registered))
		case strings.HasPrefix(r.URL.Path, "/v1/agent/service/deregister/"):
			deregPath = r.URL.Path
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	registry, err := NewConsulRegistry(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)

	err = registry.Register(Registration{
		ServiceID:   "shelter-api-1",
		ServiceName: "shelter-api",
		Address:     "10.0.0.5",
		Port:        5000,
		HealthURL:   "http://10.0.0.5:5000/health",
	})
	require.NoError(t, err)

	assert.Equal(t, "shelter-api-1", registered["ID"])
	assert.Equal(t, "shelter-api", registered["Name"])
	check, ok := registered["Check"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "http://10.0.0.5:5000/health", check["HTTP"])

	require.NoError(t, registry.Deregister("shelter-api-1"))
	assert.Equal(t, "/v1/agent/service/deregister/shelter-api-1", deregPath)
}

func TestNewAgentServiceRegistration_WithoutHealthURL(t *testing.T) {
	reg := newAgentServiceRegistration(Registration{ServiceID: "a", ServiceName: "b"})
	assert.Nil(t, reg.Check)
}
