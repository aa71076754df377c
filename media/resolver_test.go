package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholder = "/images/placeholder.jpg"

type fakePresigner struct {
	err  error
	keys []string
}

func (f *fakePresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, aws.ToString(params.Key))
	return &v4.PresignedHTTPRequest{URL: "https://signed.example.com/" + aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key) + "?sig=1"}, nil
}

func TestResolve_FallbackOrder(t *testing.T) {
	r := NewResolver(placeholder)
	ctx := context.Background()

	explicit := "https://cdn.example.com/thumb.jpg"
	assert.Equal(t, explicit, r.Resolve(ctx, &explicit, "dQw4w9WgXcQ"))
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", r.Resolve(ctx, nil, "dQw4w9WgXcQ"))

	blank := "   "
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", r.Resolve(ctx, &blank, "dQw4w9WgXcQ"))
	assert.Equal(t, placeholder, r.Resolve(ctx, nil, ""))
}

func TestResolve_SiteRelativePathPassesThrough(t *testing.T) {
	r := NewResolver(placeholder)
	ref := "/images/hero.jpg"
	assert.Equal(t, ref, r.ResolveImage(context.Background(), &ref))
}

func TestResolve_BucketPathWithPublicBase(t *testing.T) {
	r := NewResolver(placeholder, WithPublicBaseURL("https://storage.example.com/public/media/"))
	ref := "albums/summer trip/cover.jpg"

	assert.Equal(t, "https://storage.example.com/public/media/albums/summer%20trip/cover.jpg", r.ResolveImage(context.Background(), &ref))
}

func TestResolve_BucketPathPresigned(t *testing.T) {
	presigner := &fakePresigner{}
	r := NewResolver(placeholder, WithPresigner(presigner, "media", time.Minute))
	ref := "media/recipes/soup.jpg"

	got := r.ResolveImage(context.Background(), &ref)

	assert.Equal(t, "https://signed.example.com/media/recipes/soup.jpg?sig=1", got)
	assert.Equal(t, []string{"recipes/soup.jpg"}, presigner.keys)
}

func TestResolve_PresignFailureFallsBack(t *testing.T) {
	r := NewResolver(placeholder, WithPresigner(&fakePresigner{err: errors.New("no credentials")}, "media", 0))
	ref := "recipes/soup.jpg"

	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", r.Resolve(context.Background(), &ref, "dQw4w9WgXcQ"))
	assert.Equal(t, placeholder, r.ResolveImage(context.Background(), &ref))
}

func TestResolve_BucketPathWithoutStorage(t *testing.T) {
	r := NewResolver(placeholder)
	ref := "recipes/soup.jpg"
	assert.Equal(t, placeholder, r.ResolveImage(context.Background(), &ref))
}

func TestNewS3Presigner_SignsOffline(t *testing.T) {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
	r := NewResolver(placeholder, WithPresigner(NewS3Presigner(cfg, "https://storage.example.com"), "media", 5*time.Minute))
	ref := "albums/cover.jpg"

	got := r.ResolveImage(context.Background(), &ref)

	require.True(t, strings.HasPrefix(got, "https://storage.example.com/media/albums/cover.jpg?"), got)
	assert.Contains(t, got, "X-Amz-Signature=")
	assert.Contains(t, got, "X-Amz-Expires=300")
}
