// Package config provides configuration management for the Media Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field in a `default` tag.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, upload limit
//   - Database: driver and connection details of the metadata store
//   - Storage: S3/MinIO credentials, bucket and public URL base
//   - Log: Logging level and format
//   - Media: reconciliation timeout and dimension probe limits
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
