// Package config provides configuration management for the sales sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field in `default` struct tags.
//
// # Configuration Structure
//
//   - Server: HTTP server settings (port, API key)
//   - Database: sales store connection (mysql, postgres or sqlite)
//   - Storage: S3/MinIO credentials for snapshots referenced as s3://bucket/key
//   - Log: Logging level and format
//   - Sync: archive entry name, worker count, delete batch size, guards
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Driver)
package config
