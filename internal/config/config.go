package config

import (
	"fmt"
	"os"
)

// ViewerConfig holds the settings for the terminal viewer.
type ViewerConfig struct {
	// GraphQL endpoint the viewer queries ( direct backend or the relay )
	GraphQLURL string

	// Optional bearer token forwarded with every query
	AuthToken string

	// IANA timezone for bucket rendering ( empty means UTC )
	Timezone string

	// Log level: debug, info, warn, error
	LogLevel string

	// File the viewer logs to ( stderr belongs to the terminal UI )
	LogFile string
}

// LoadViewer reads the viewer configuration from the environment.
func LoadViewer() *ViewerConfig {
	return &ViewerConfig{
		GraphQLURL: getenv("SOROVIEW_GRAPHQL_URL", "http://localhost:8080/graphql"),
		AuthToken:  os.Getenv("SOROVIEW_AUTH_TOKEN"),
		Timezone:   getenv("SOROVIEW_TIMEZONE", "UTC"),
		LogLevel:   getenv("SOROVIEW_LOG_LEVEL", "info"),
		LogFile:    getenv("SOROVIEW_LOG_FILE", "soroview.log"),
	}
}

// Validate checks if the viewer configuration is valid
func (c *ViewerConfig) Validate() error {
	if c.GraphQLURL == "" {
		return fmt.Errorf("SOROVIEW_GRAPHQL_URL is required")
	}
	return nil
}

// ProxyConfig holds the settings for the GraphQL relay daemon.
type ProxyConfig struct {
	// Address the relay listens on
	ListenAddr string

	// Upstream GraphQL endpoint requests are forwarded to
	UpstreamGraphQLURL string

	// Log level: debug, info, warn, error
	LogLevel string
}

// LoadProxy reads the relay configuration from the environment.
func LoadProxy() *ProxyConfig {
	return &ProxyConfig{
		ListenAddr:         getenv("PROXY_LISTEN_ADDR", ":8080"),
		UpstreamGraphQLURL: getenv("BACKEND_GRAPHQL_URL", "http://localhost:8000/graphql/"),
		LogLevel:           getenv("PROXY_LOG_LEVEL", "info"),
	}
}

// Validate checks if the relay configuration is valid
func (c *ProxyConfig) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("PROXY_LISTEN_ADDR is required")
	}
	if c.UpstreamGraphQLURL == "" {
		return fmt.Errorf("BACKEND_GRAPHQL_URL is required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
