package discovery

import (
	"fmt"
	"time"

	consul "github.com/hashicorp/consul/api"
)

// Registration describes how this instance announces itself to Consul.
type Registration struct {
	ServiceID   string
	ServiceName string
	Address     string
	Port        int
	Tags        []string
	HealthURL   string
}

// ConsulRegistry registers and deregisters the service with a Consul agent.
type ConsulRegistry struct {
	client *consul.Client
}

// NewConsulRegistry connects to the agent at addr.
func NewConsulRegistry(addr string) (*ConsulRegistry, error) {
	cfg := consul.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}

	client, err := consul.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("consul: new client: %w", err)
	}

	return &ConsulRegistry{client: client}, nil
}

// Register adds the service with an HTTP health check against reg.HealthURL.
func (r *ConsulRegistry) Register(reg Registration) error {
	return r.client.Agent().ServiceRegister(newAgentServiceRegistration(reg))
}

// Deregister removes the service.
func (r *ConsulRegistry) Deregister(serviceID string) error {
	return r.client.Agent().ServiceDeregister(serviceID)
}

func newAgentServiceRegistration(reg Registration) *consul.AgentServiceRegistration {
	registration := &consul.AgentServiceRegistration{
		ID:      reg.ServiceID,
		Name:    reg.ServiceName,
		Address: reg.Address,
		Port:    reg.Port,
		Tags:    reg.Tags,
	}

	if reg.HealthURL != "" {
		registration.Check = &consul.AgentServiceCheck{
			HTTP:                           reg.HealthURL,
			Interval:                       (10 * time.Second).String(),
			Timeout:                        (3 * time.Second).String(),
			DeregisterCriticalServiceAfter: time.Minute.String(),
		}
	}

	return registration
}
