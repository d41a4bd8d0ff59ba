package storage

import (
	"context"
	"fmt"
	"os"
)

// CephContext targets a Ceph RADOS Gateway exposing an S3-compatible
// endpoint, reusing the same httpBackend and staticAuth plumbing as
// S3Context with its own endpoint/credential env vars so a deployment
// can point at both an AWS bucket and an on-prem Ceph cluster at once.
type CephContext struct {
	backend *httpBackend
	pool    string
}

// NewCephContext builds a Ceph backend for pool (the RGW bucket name),
// reading the gateway endpoint and access key from the environment
// (ROK4_CEPH_ENDPOINT, ROK4_CEPH_ACCESS_KEY).
func NewCephContext(pool string) *CephContext {
	endpoint := os.Getenv("ROK4_CEPH_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:7480"
	}
	auth := newStaticAuth("ROK4_CEPH_ACCESS_KEY")
	c := &CephContext{backend: nil, pool: pool}
	c.backend = newHTTPBackend(auth, func(container, name string) string {
		return fmt.Sprintf("%s/%s/%s", endpoint, container, name)
	})
	return c
}

func (c *CephContext) PathFor(name string) string {
	return fmt.Sprintf("ceph://%s/%s", c.pool, name)
}

func (c *CephContext) Exists(ctx context.Context, name string) (bool, error) {
	return c.backend.exists(ctx, c.pool, name)
}

func (c *CephContext) Read(ctx context.Context, dst []byte, offset, size int64, name string) (int, error) {
	data, err := c.backend.readRange(ctx, c.pool, name, offset, size)
	if err != nil {
		return 0, err
	}
	return copy(dst, data), nil
}

func (c *CephContext) ReadFull(ctx context.Context, name string) ([]byte, error) {
	return c.backend.readFull(ctx, c.pool, name)
}

func (c *CephContext) OpenToWrite(_ context.Context, name string) (*WriteHandle, error) {
	return newWriteHandle(name), nil
}

func (c *CephContext) Write(_ context.Context, h *WriteHandle, offset int64, src []byte) error {
	h.writeAt(offset, src)
	return nil
}

func (c *CephContext) CloseToWrite(ctx context.Context, h *WriteHandle) error {
	return c.backend.putObject(ctx, c.pool, h.name, h.buf)
}
