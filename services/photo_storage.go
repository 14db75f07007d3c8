package services

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PhotoStorage is where a verified workout photo ends up. Store consumes
// the temp file on success; Remove undoes a Store when the DB insert
// fails afterward.
type PhotoStorage interface {
	Store(tempPath, key string) (ref string, err error)
	Remove(ref string) error
}

// LocalPhotoStorage keeps photos under a directory on disk.
type LocalPhotoStorage struct {
	Dir string
}

func NewLocalPhotoStorage(dir string) *LocalPhotoStorage {
	return &LocalPhotoStorage{Dir: dir}
}

func (l *LocalPhotoStorage) Store(tempPath, key string) (string, error) {
	dest := filepath.Join(l.Dir, key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}
	if err := os.Rename(tempPath, dest); err != nil {
		return "", err
	}
	return key, nil
}

func (l *LocalPhotoStorage) Remove(ref string) error {
	return os.Remove(filepath.Join(l.Dir, ref))
}

// S3PhotoStorage uploads photos to a bucket and serves them by key.
type S3PhotoStorage struct {
	client *s3.Client
	bucket string
}

func NewS3PhotoStorage(region, bucket string) (*S3PhotoStorage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %v", err)
	}
	return &S3PhotoStorage{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (st *S3PhotoStorage) Store(tempPath, key string) (string, error) {
	f, err := os.Open(tempPath)
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(tempPath))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err = st.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		f.Close()
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	f.Close()
	os.Remove(tempPath)
	return key, nil
}

func (st *S3PhotoStorage) Remove(ref string) error {
	_, err := st.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(ref),
	})
	return err
}
