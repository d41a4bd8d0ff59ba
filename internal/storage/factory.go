package storage

import (
	"github.com/rok4/pyramid-core/internal/config"
	"github.com/rok4/pyramid-core/internal/rerr"
)

// Open returns a Context for p, backed by env for remote credentials.
func Open(p Path, env config.Env) (Context, error) {
	switch p.Type {
	case TypeFile:
		return NewFileContext(p.Container), nil
	case TypeS3:
		return NewS3Context(p.Container), nil
	case TypeSwift:
		return NewSwiftContext(env, p.Container), nil
	case TypeCeph:
		return NewCephContext(p.Container), nil
	default:
		return nil, rerr.Wrap(rerr.Config, "unsupported storage type %q", p.Type)
	}
}
