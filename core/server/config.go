package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the gate.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxUploadMB caps request bodies, and therefore single uploads.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"50"`
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.MaxUploadMB <= 0 {
		return 50 << 20
	}
	return c.MaxUploadMB << 20
}
