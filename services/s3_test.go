package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResumeFetcher_LocalPathPassesThrough(t *testing.T) {
	fetcher := &ResumeFetcher{}

	path, err := fetcher.Fetch("/tmp/resume.pdf")
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/resume.pdf", path)
}

func TestResumeFetcher_S3WithoutCredentialsFails(t *testing.T) {
	fetcher := &ResumeFetcher{}

	_, err := fetcher.Fetch("s3://bucket/resume.pdf")
	assert.Error(t, err)
}

func TestSplitS3Reference(t *testing.T) {
	bucket, key, err := splitS3Reference("s3://my-bucket/resumes/jane.docx")
	assert.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "resumes/jane.docx", key)

	_, _, err = splitS3Reference("s3://only-bucket")
	assert.Error(t, err)

	_, _, err = splitS3Reference("s3:///no-bucket")
	assert.Error(t, err)
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, ".pdf", fileExtension("resumes/jane.pdf"))
	assert.Equal(t, "", fileExtension("resumes/jane"))
}
