// Package storage implements the unified StorageContext abstraction of
// spec.md §4.1: exists/read/read_full/open_to_write/write/close_to_write
// over file, S3, Swift and Ceph backends, grounded on the teacher's
// mmap-backed local reader (internal/cog/reader.go) for the File backend
// and on original_source/src/storage/SwiftContext.cpp for the retry,
// lazy-auth and re-auth semantics the remote backends share.
package storage

import (
	"fmt"
	"strings"

	"github.com/rok4/pyramid-core/internal/rerr"
)

// Type identifies a storage backend kind.
type Type string

const (
	TypeFile  Type = "file"
	TypeS3    Type = "s3"
	TypeSwift Type = "swift"
	TypeCeph  Type = "ceph"
)

// Path is a parsed "type://container/name" storage reference.
type Path struct {
	Type      Type
	Container string
	Name      string
}

// ParsePath parses a unified storage path (spec.md §6 "Storage paths").
func ParsePath(s string) (Path, error) {
	idx := strings.Index(s, "://")
	if idx < 0 {
		return Path{}, rerr.Wrap(rerr.Config, "storage path %q missing type:// prefix", s)
	}
	typ := Type(s[:idx])
	switch typ {
	case TypeFile, TypeS3, TypeSwift, TypeCeph:
	default:
		return Path{}, rerr.Wrap(rerr.Config, "storage path %q has unknown type %q", s, typ)
	}

	rest := s[idx+3:]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Path{}, rerr.Wrap(rerr.Config, "storage path %q missing container or name", s)
	}
	return Path{Type: typ, Container: parts[0], Name: parts[1]}, nil
}

func (p Path) String() string {
	return fmt.Sprintf("%s://%s/%s", p.Type, p.Container, p.Name)
}
