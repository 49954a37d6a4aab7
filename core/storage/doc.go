// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the feed needs: enumerating the upload folder, fetching object
// metadata and content, persisting the index document, inspecting access
// grants, and subscribing to upload notifications. The abstraction supports
// both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - ListObjects: Lists objects in a bucket (supports prefix, metadata).
//   - StatObject: Fetches metadata for a single object.
//   - GetObject / PutObject / RemoveObject: Content access.
//   - GetObjectACL / GetBucketPolicy / SetBucketPolicy: Public-read grants.
//   - ListenBucketNotification: Upload event stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "photos")
package storage
