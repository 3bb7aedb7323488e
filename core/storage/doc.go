// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow Client interface, which keeps
// storage interactions mockable (see core/storage/mocks). This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Archive
//
// Archive keeps metadata snapshots as JSON objects keyed
// "<backend>/<app>/<timestamp>.json". The get commands save into it and the
// set commands can read desired state back out of it.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage.Bucket)
//	err = archive.Save(ctx, storage.SnapshotKey("play", pkg, time.Now()), data)
package storage
