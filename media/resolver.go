package media

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultPresignTTL = 15 * time.Minute

// Presigner is the subset of *s3.PresignClient the resolver needs
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Resolver turns a stored image reference (absolute URL, storage bucket path,
// or nothing) into a displayable URL.
type Resolver struct {
	placeholder   string
	publicBaseURL string
	bucket        string
	presigner     Presigner
	presignTTL    time.Duration
	logger        zerolog.Logger
}

type ResolverOption func(*Resolver)

// WithPublicBaseURL serves bucket paths from a public base such as a CDN or public bucket URL
func WithPublicBaseURL(baseURL string) ResolverOption {
	return func(r *Resolver) {
		r.publicBaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithPresigner signs bucket paths against a private bucket
func WithPresigner(presigner Presigner, bucket string, ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.presigner = presigner
		r.bucket = bucket
		if ttl > 0 {
			r.presignTTL = ttl
		}
	}
}

func NewResolver(placeholder string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		placeholder: placeholder,
		presignTTL:  defaultPresignTTL,
		logger:      log.With().Str("component", "mediaResolver").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewS3Presigner builds a presign client, optionally against an S3-compatible endpoint
func NewS3Presigner(cfg aws.Config, endpoint string) *s3.PresignClient {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client)
}

// Resolve applies the fallback order: explicit thumbnail, then the thumbnail
// derived from youtubeID, then the placeholder.
func (r *Resolver) Resolve(ctx context.Context, thumbnail *string, youtubeID string) string {
	if thumbnail != nil && strings.TrimSpace(*thumbnail) != "" {
		if resolved, ok := r.resolveRef(ctx, strings.TrimSpace(*thumbnail)); ok {
			return resolved
		}
	}
	if youtubeID != "" {
		return ThumbnailURL(youtubeID)
	}
	return r.placeholder
}

// ResolveImage resolves an image reference with no video fallback
func (r *Resolver) ResolveImage(ctx context.Context, ref *string) string {
	return r.Resolve(ctx, ref, "")
}

func (r *Resolver) resolveRef(ctx context.Context, ref string) (string, bool) {
	if isAbsoluteURL(ref) || strings.HasPrefix(ref, "/") {
		return ref, true
	}

	key := strings.TrimPrefix(ref, r.bucket+"/")
	if r.publicBaseURL != "" {
		return r.publicBaseURL + "/" + (&url.URL{Path: key}).EscapedPath(), true
	}

	if r.presigner != nil {
		req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(r.bucket),
			Key:    aws.String(key),
		}, func(o *s3.PresignOptions) {
			o.Expires = r.presignTTL
		})
		if err != nil {
			r.logger.Error().Err(err).Str("key", key).Msg("Failed to presign storage path")
			return "", false
		}
		return req.URL, true
	}

	r.logger.Warn().Str("ref", ref).Msg("Storage path with no storage configured")
	return "", false
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}
