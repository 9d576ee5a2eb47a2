package script

import "context"

//go:generate mockgen -source=cache.go -destination=../mocks/script/mock_cache.go -package=mock_script

// Cache is a bounded-lifetime cache of parsed script text.
type Cache interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Set(ctx context.Context, key Key, parsedText string) error
}
