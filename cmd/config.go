package cmd

import "time"

// GatewayMode selects the backend adapter wired at startup.
const (
	GatewayModeHTTP      = "http"
	GatewayModeSimulated = "simulated"
)

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	GatewayMode    string
	BackendBaseURL string
	AmqpURL        string
	AmqpQueue      string
	PullInterval   time.Duration
	ConfirmTimeout time.Duration
}
