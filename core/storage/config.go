package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// PublicEndpoint overrides Endpoint when building anonymous download
	// URLs (e.g. a CDN or reverse-proxy hostname). Empty means Endpoint.
	PublicEndpoint string `mapstructure:"public_endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding uploads and the index.
	Bucket string `mapstructure:"bucket" default:"photos"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// DownloadConfig returns a copy of the config with PublicEndpoint applied,
// suitable for passing to PublicURL.
func (c Config) DownloadConfig() Config {
	if c.PublicEndpoint != "" {
		out := c
		out.Endpoint = c.PublicEndpoint
		return out
	}
	return c
}
