package gateways

import "context"

// ChecksumWriter writes a sha256sum-style file next to a release artifact
type ChecksumWriter interface {
	WriteChecksum(ctx context.Context, path string) (string, error)
}

// Signer produces a detached signature next to a release artifact
type Signer interface {
	SignDetached(ctx context.Context, path string) (string, error)
}
