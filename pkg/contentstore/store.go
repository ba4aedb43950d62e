package contentstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup for a hash the backend has never stored (or no
// longer stores).
var ErrNotFound = errors.New("content not found")

// StorageError wraps backend I/O failures so callers can tell "missing" from
// "unreachable".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("content store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Hash is the content address of a stored document: lowercase hex MD5 over
// the UTF-8 text. Equal text always yields an equal hash.
type Hash string

// HashText computes the content address for a document text.
func HashText(text string) Hash {
	sum := md5.Sum([]byte(text))
	return Hash(hex.EncodeToString(sum[:]))
}

// Backend is the durable key-value store blobs land in. Save must be
// idempotent per hash: writing the same hash twice is harmless because the
// content is identical by construction.
type Backend interface {
	Save(ctx context.Context, hash Hash, content string) error
	Load(ctx context.Context, hash Hash) (string, error)
	Exists(ctx context.Context, hash Hash) (bool, error)
	DeleteAll(ctx context.Context) error
}

// Store deduplicates document content by content address. It owns blob
// lifecycle exclusively; references to blobs live in the session ledger.
type Store interface {
	// Put stores text under its content hash, skipping the write when the
	// blob already exists. It returns the hash either way, plus whether an
	// existing blob made the write a no-op.
	Put(ctx context.Context, text string) (Hash, bool, error)

	// Get returns the text stored under hash, or ErrNotFound.
	Get(ctx context.Context, hash Hash) (string, error)

	// PurgeAll removes every blob. This is a whole-store maintenance
	// operation, deliberately separate from per-session clearing.
	PurgeAll(ctx context.Context) error
}

type store struct {
	backend Backend
}

// New creates a content-addressed Store over the given backend.
func New(backend Backend) Store {
	return &store{backend: backend}
}

func (s *store) Put(ctx context.Context, text string) (Hash, bool, error) {
	hash := HashText(text)

	exists, err := s.backend.Exists(ctx, hash)
	if err != nil {
		return "", false, &StorageError{Op: "exists", Err: err}
	}
	if exists {
		return hash, true, nil
	}

	// A concurrent writer may land the same hash between the check and the
	// write; Save tolerates that because both writers carry identical bytes.
	if err := s.backend.Save(ctx, hash, text); err != nil {
		return "", false, &StorageError{Op: "save", Err: err}
	}
	return hash, false, nil
}

func (s *store) Get(ctx context.Context, hash Hash) (string, error) {
	content, err := s.backend.Load(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", &StorageError{Op: "load", Err: err}
	}
	return content, nil
}

func (s *store) PurgeAll(ctx context.Context) error {
	if err := s.backend.DeleteAll(ctx); err != nil {
		return &StorageError{Op: "delete all", Err: err}
	}
	return nil
}
