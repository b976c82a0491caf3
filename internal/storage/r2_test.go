package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestR2ConfigEnabled(t *testing.T) {
	assert.False(t, R2Config{}.Enabled())
	assert.False(t, R2Config{AccountID: "a", Bucket: "b", AccessKey: "c"}.Enabled())
	assert.True(t, R2Config{AccountID: "a", Bucket: "b", AccessKey: "c", SecretKey: "d"}.Enabled())
}

func TestNewR2StoreDisabled(t *testing.T) {
	_, err := NewR2Store(context.Background(), R2Config{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestPutWithPublicURL(t *testing.T) {
	fake := &fakeS3{}
	store := newR2Store(fake, R2Config{Bucket: "reports", PublicURL: "https://cdn.example.com/"})

	url, err := store.Put(context.Background(), "reports/abc.html", []byte("<html></html>"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/reports/abc.html", url)
	assert.Equal(t, "reports", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "reports/abc.html", aws.ToString(fake.input.Key))
	assert.Equal(t, "text/html; charset=utf-8", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "<html></html>", fake.body)
}

func TestPutPrivateBucketAndErrors(t *testing.T) {
	store := newR2Store(&fakeS3{}, R2Config{Bucket: "reports"})
	key, err := store.Put(context.Background(), "k.html", nil)
	require.NoError(t, err)
	assert.Equal(t, "k.html", key)

	store = newR2Store(&fakeS3{err: errors.New("denied")}, R2Config{Bucket: "reports"})
	_, err = store.Put(context.Background(), "k.html", nil)
	assert.ErrorContains(t, err, "denied")
}
