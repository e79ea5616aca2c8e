package fsx

import (
	"context"
	"io"
	"time"
)

// FileReader reads a file by its storage path.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileLister enumerates files under a folder prefix.
type FileLister interface {
	ListFiles(ctx context.Context, folder string) ([]FileInfo, error)
}

// FileSystem is the full storage surface used by the application.
type FileSystem interface {
	FileReader
	FileLister
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
	Join(parts ...string) string
}

// FileInfo describes a stored file.
type FileInfo struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
