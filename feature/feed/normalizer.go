package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"photofeed/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const allUsersURI = "http://acs.amazonaws.com/groups/global/AllUsers"

// Normalizer makes discovered objects publicly link-readable, best-effort.
type Normalizer struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewNormalizer creates an access normalizer for the given bucket.
func NewNormalizer(client storage.Client, bucket string, logger *zap.Logger) *Normalizer {
	return &Normalizer{client: client, bucket: bucket, logger: logger}
}

// EnsurePublicRead checks the object's existing grants and, when no
// anyone-with-the-link grant exists, installs an anonymous read statement in
// the bucket policy covering the object's prefix. Failures are reported in
// the result, never raised; the object is indexed either way and a later
// pass retries.
func (n *Normalizer) EnsurePublicRead(ctx context.Context, id string) GrantResult {
	// Object ACLs are authoritative when the backend supports them. A read
	// failure here (MinIO returns NotImplemented) just routes us to the
	// policy path.
	if info, err := n.client.GetObjectACL(ctx, n.bucket, id); err == nil && hasAnyoneGrant(info) {
		return GrantResult{ID: id, AlreadyPublic: true}
	}

	prefix := objectPrefix(id)
	current, err := n.client.GetBucketPolicy(ctx, n.bucket)
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchBucketPolicy" {
		return GrantResult{ID: id, Err: fmt.Errorf("failed to read bucket policy: %w", err)}
	}

	doc, err := parsePolicy(current)
	if err != nil {
		return GrantResult{ID: id, Err: fmt.Errorf("failed to parse bucket policy: %w", err)}
	}

	resource := fmt.Sprintf("arn:aws:s3:::%s/%s*", n.bucket, prefix)
	if doc.allowsAnonymousRead(resource) {
		return GrantResult{ID: id, AlreadyPublic: true}
	}

	doc.appendAnonymousRead(resource)
	updated, err := json.Marshal(doc)
	if err != nil {
		return GrantResult{ID: id, Err: fmt.Errorf("failed to encode bucket policy: %w", err)}
	}
	if err := n.client.SetBucketPolicy(ctx, n.bucket, string(updated)); err != nil {
		return GrantResult{ID: id, Err: fmt.Errorf("failed to set bucket policy: %w", err)}
	}

	n.logger.Info("Installed anonymous read grant", zap.String("prefix", prefix))
	return GrantResult{ID: id, Granted: true}
}

func hasAnyoneGrant(info *minio.ObjectInfo) bool {
	if info == nil {
		return false
	}
	for _, g := range info.Grant {
		if g.Grantee.URI != allUsersURI {
			continue
		}
		if g.Permission == "READ" || g.Permission == "FULL_CONTROL" {
			return true
		}
	}
	return false
}

// objectPrefix returns the folder portion of an object key, trailing slash
// included, or "" for a root-level object.
func objectPrefix(id string) string {
	dir := path.Dir(id)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir + "/"
}

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    string          `json:"Effect"`
	Principal json.RawMessage `json:"Principal"`
	Action    flexibleList    `json:"Action"`
	Resource  flexibleList    `json:"Resource"`
}

// flexibleList accepts both the string and array forms S3 policies use.
type flexibleList []string

func (l *flexibleList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = flexibleList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = flexibleList(many)
	return nil
}

func parsePolicy(raw string) (*policyDocument, error) {
	doc := &policyDocument{Version: "2012-10-17"}
	if strings.TrimSpace(raw) == "" {
		return doc, nil
	}
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		return nil, err
	}
	if doc.Version == "" {
		doc.Version = "2012-10-17"
	}
	return doc, nil
}

func (d *policyDocument) allowsAnonymousRead(resource string) bool {
	for _, st := range d.Statement {
		if st.Effect != "Allow" || !strings.Contains(string(st.Principal), `"*"`) {
			continue
		}
		if !contains(st.Action, "s3:GetObject") {
			continue
		}
		if contains(st.Resource, resource) {
			return true
		}
	}
	return false
}

func (d *policyDocument) appendAnonymousRead(resource string) {
	d.Statement = append(d.Statement, policyStatement{
		Effect:    "Allow",
		Principal: json.RawMessage(`{"AWS":["*"]}`),
		Action:    flexibleList{"s3:GetObject"},
		Resource:  flexibleList{resource},
	})
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
