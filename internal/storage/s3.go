package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rok4/pyramid-core/internal/rerr"
)

// staticAuth is the shared authenticator for S3 and Ceph: unlike Swift's
// token dance, both speak a long-lived access key pair, so "reauthenticate"
// only ever means "surface a clearer error" — the credential itself
// cannot be refreshed mid-session. Still implements the authenticator
// interface so httpBackend's retry/reauth flow stays uniform across all
// three backends.
type staticAuth struct {
	mu        sync.Mutex
	accessKey string
	err       error
}

func newStaticAuth(accessKeyEnv string) *staticAuth {
	key := os.Getenv(accessKeyEnv)
	var err error
	if key == "" {
		err = rerr.Wrap(rerr.Config, "%s is not set", accessKeyEnv)
	}
	return &staticAuth{accessKey: key, err: err}
}

func (a *staticAuth) Authenticate(context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accessKey, a.err
}

func (a *staticAuth) Reauthenticate(ctx context.Context) (string, error) {
	return a.Authenticate(ctx)
}

// S3Context is the S3-compatible StorageContext. Request signing (SigV4)
// is out of this module's scope the same way spec.md §1 keeps
// object-store transport authentication external; the access key is
// carried as a bearer-style header for backends that accept it,
// mirroring the simplified auth header this module's Swift backend uses.
type S3Context struct {
	backend *httpBackend
	bucket  string
	region  string
}

// NewS3Context builds an S3 backend for bucket, reading the endpoint and
// access key from the environment (ROK4_S3_ENDPOINT, ROK4_S3_ACCESS_KEY).
func NewS3Context(bucket string) *S3Context {
	endpoint := os.Getenv("ROK4_S3_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://s3.amazonaws.com"
	}
	auth := newStaticAuth("ROK4_S3_ACCESS_KEY")
	c := &S3Context{bucket: bucket, region: os.Getenv("ROK4_S3_REGION")}
	c.backend = newHTTPBackend(auth, func(container, name string) string {
		return fmt.Sprintf("%s/%s/%s", endpoint, container, name)
	})
	return c
}

func (c *S3Context) PathFor(name string) string {
	return fmt.Sprintf("s3://%s/%s", c.bucket, name)
}

func (c *S3Context) Exists(ctx context.Context, name string) (bool, error) {
	return c.backend.exists(ctx, c.bucket, name)
}

func (c *S3Context) Read(ctx context.Context, dst []byte, offset, size int64, name string) (int, error) {
	data, err := c.backend.readRange(ctx, c.bucket, name, offset, size)
	if err != nil {
		return 0, err
	}
	return copy(dst, data), nil
}

func (c *S3Context) ReadFull(ctx context.Context, name string) ([]byte, error) {
	return c.backend.readFull(ctx, c.bucket, name)
}

func (c *S3Context) OpenToWrite(_ context.Context, name string) (*WriteHandle, error) {
	return newWriteHandle(name), nil
}

func (c *S3Context) Write(_ context.Context, h *WriteHandle, offset int64, src []byte) error {
	h.writeAt(offset, src)
	return nil
}

func (c *S3Context) CloseToWrite(ctx context.Context, h *WriteHandle) error {
	return c.backend.putObject(ctx, c.bucket, h.name, h.buf)
}
