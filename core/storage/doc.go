// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so snapshot archives can be read from (and
// fixture archives uploaded to) AWS S3 or self-hosted MinIO. The Client
// interface keeps storage interactions mockable (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, "snapshots", "0122_CUR_Source_V2.zip", minio.GetObjectOptions{})
package storage
