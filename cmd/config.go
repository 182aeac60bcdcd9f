package cmd

import "time"

// Config carries every runtime setting of the sales service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	InventoryAPIURL string
	DispatchAPIURL  string

	// ExternalCallTimeout bounds every outbound inventory/dispatch call.
	ExternalCallTimeout time.Duration
}
