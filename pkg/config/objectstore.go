package config

import (
	"fmt"
	"strings"
)

// ObjectStoreConfig holds the connection settings for the S3-compatible
// object storage service (MinIO in local setups).
type ObjectStoreConfig struct {
	Endpoint     string `koanf:"endpoint"`
	Region       string `koanf:"region"`
	AccessKey    string `koanf:"accessKey"`
	SecretKey    string `koanf:"secretKey"`
	Bucket       string `koanf:"bucket"`
	PublicURL    string `koanf:"publicUrl"`
	UsePathStyle bool   `koanf:"usePathStyle"`
}

func (c *ObjectStoreConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("object store endpoint is not configured")
	}
	if c.Bucket == "" {
		return fmt.Errorf("object store bucket is not configured")
	}
	if c.PublicURL == "" {
		return fmt.Errorf("object store public URL is not configured")
	}
	if strings.HasSuffix(c.PublicURL, "/") {
		return fmt.Errorf("object store public URL must not end with '/': %s", c.PublicURL)
	}
	return nil
}
