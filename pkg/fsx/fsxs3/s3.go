package fsxs3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3FileSystem implements fsx.FileSystem on top of an S3 bucket.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates a file system rooted at bucket/prefix.
func NewS3FileSystem(client *s3.Client, bucket, prefix string) fsx.FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (f *S3FileSystem) key(p string) string {
	p = strings.TrimPrefix(p, "/")
	if f.prefix == "" {
		return p
	}
	if strings.HasPrefix(p, f.prefix+"/") || p == f.prefix {
		return p
	}
	return f.prefix + "/" + p
}

// ReadFile downloads the object at path.
func (f *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(p)),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", p, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", p, err)
	}
	return data, nil
}

// WriteFileStream uploads the reader's contents to path.
func (f *S3FileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(p)),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", p, err)
	}
	return nil
}

// DeleteFile removes the object at path.
func (f *S3FileSystem) DeleteFile(ctx context.Context, p string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(p)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", p, err)
	}
	return nil
}

// ListFiles enumerates objects under the given folder.
func (f *S3FileSystem) ListFiles(ctx context.Context, folder string) ([]fsx.FileInfo, error) {
	prefix := f.key(folder)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var files []fsx.FileInfo
	paginator := s3.NewListObjectsV2Paginator(f.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(f.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", folder, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			info := fsx.FileInfo{
				Path: strings.TrimPrefix(key, f.prefix+"/"),
				Name: path.Base(key),
			}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			files = append(files, info)
		}
	}

	return files, nil
}

// Join builds a storage path from parts.
func (f *S3FileSystem) Join(parts ...string) string {
	return path.Join(parts...)
}
