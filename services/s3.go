package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ResumeFetcher resolves resume references to local file paths. References of
// the form s3://bucket/key are downloaded; anything else is treated as a
// local path and returned as-is.
type ResumeFetcher struct {
	s3Client *s3.S3
}

// NewResumeFetcher builds a fetcher from AWS environment credentials. S3
// support is optional: without credentials the fetcher still resolves local
// paths.
func NewResumeFetcher() *ResumeFetcher {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	region := os.Getenv("AWS_REGION")

	if accessKey == "" || secretKey == "" || region == "" {
		return &ResumeFetcher{}
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		log.Printf("Could not create AWS session, S3 resumes disabled: %v", err)
		return &ResumeFetcher{}
	}

	return &ResumeFetcher{s3Client: s3.New(sess)}
}

// Fetch resolves the reference to a local file path. Downloaded files land in
// the OS temp directory and are the caller's to clean up.
func (f *ResumeFetcher) Fetch(reference string) (string, error) {
	if !strings.HasPrefix(reference, "s3://") {
		return reference, nil
	}
	if f.s3Client == nil {
		return "", fmt.Errorf("AWS credentials not configured, cannot fetch %s", reference)
	}

	bucket, key, err := splitS3Reference(reference)
	if err != nil {
		return "", err
	}

	obj, err := f.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %v", reference, err)
	}
	defer obj.Body.Close()

	tmp, err := os.CreateTemp("", "resume-*"+fileExtension(key))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, obj.Body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write resume file: %v", err)
	}

	log.Printf("Downloaded resume from %s to %s", reference, tmp.Name())
	return tmp.Name(), nil
}

func splitS3Reference(reference string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(reference, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid S3 reference: %s", reference)
	}
	return parts[0], parts[1], nil
}

func fileExtension(key string) string {
	if idx := strings.LastIndex(key, "."); idx != -1 {
		return key[idx:]
	}
	return ""
}
