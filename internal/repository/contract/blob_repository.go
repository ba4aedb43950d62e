package contract

import (
	"context"

	"ai-docchat-be/pkg/contentstore"
)

// BlobRepository is the durable backend the content store writes blobs to.
// It satisfies contentstore.Backend; keys are content hashes, values the
// extracted document text.
type BlobRepository interface {
	Save(ctx context.Context, hash contentstore.Hash, content string) error
	Load(ctx context.Context, hash contentstore.Hash) (string, error)
	Exists(ctx context.Context, hash contentstore.Hash) (bool, error)
	DeleteAll(ctx context.Context) error
}
