// Package attachments resolves user supplied image references into
// multipart attachments. A reference is a local path, an http(s) URL or an
// s3://bucket/key object in S3 compatible storage.
package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/eventflow/internal/client/formdata"
	"github.com/dmitrijs2005/eventflow/internal/netx"
)

const s3Scheme = "s3://"

var ErrInvalidRef = errors.New("invalid attachment reference")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in, optFns...)
	}
)

// S3Config locates the object store. Empty keys fall back to the default
// AWS credential chain; an empty endpoint means AWS itself.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

const downloadTimeout = 30 * time.Second

type Opener struct {
	s3cfg S3Config
	http  *http.Client
}

func NewOpener(cfg S3Config) *Opener {
	return &Opener{s3cfg: cfg, http: &http.Client{Timeout: downloadTimeout}}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open resolves ref. An empty ref means "no attachment" and yields a nil
// attachment. The closer must be closed once the attachment has been read.
func (o *Opener) Open(ctx context.Context, ref string) (*formdata.Attachment, io.Closer, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nopCloser{}, nil
	}
	if strings.HasPrefix(ref, s3Scheme) {
		return o.openS3(ctx, ref)
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return o.openURL(ctx, ref)
	}
	return openLocal(ref)
}

func openLocal(p string) (*formdata.Attachment, io.Closer, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, nil, fmt.Errorf("open attachment: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat attachment: %w", err)
	}
	if st.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s is a directory", ErrInvalidRef, p)
	}

	name := filepath.Base(p)
	return &formdata.Attachment{
		FileName:    name,
		ContentType: contentTypeOf(name),
		Content:     f,
	}, f, nil
}

func (o *Opener) openURL(ctx context.Context, ref string) (*formdata.Attachment, io.Closer, error) {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}

	body, contentType, err := netx.Download(ctx, o.http, ref)
	if err != nil {
		return nil, nil, fmt.Errorf("get %s: %w", ref, err)
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." {
		name = "image"
	}
	if ct, _, _ := mime.ParseMediaType(contentType); ct == "" || ct == "application/octet-stream" {
		contentType = contentTypeOf(name)
	}
	return &formdata.Attachment{
		FileName:    name,
		ContentType: contentType,
		Content:     body,
	}, body, nil
}

func (o *Opener) openS3(ctx context.Context, ref string) (*formdata.Attachment, io.Closer, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return nil, nil, err
	}

	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("s3 client: %w", err)
	}

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get %s: %w", ref, err)
	}

	name := path.Base(key)
	contentType := aws.ToString(out.ContentType)
	if contentType == "" || contentType == "binary/octet-stream" {
		contentType = contentTypeOf(name)
	}
	return &formdata.Attachment{
		FileName:    name,
		ContentType: contentType,
		Content:     out.Body,
	}, out.Body, nil
}

func (o *Opener) s3Client(ctx context.Context) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if o.s3cfg.Region != "" {
		opts = append(opts, config.WithRegion(o.s3cfg.Region))
	}
	if o.s3cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.s3cfg.AccessKey,
			o.s3cfg.SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := o.s3cfg.Endpoint
	return newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if endpoint != "" {
			so.BaseEndpoint = aws.String(endpoint)
			// MinIO serves buckets by path
			so.UsePathStyle = true
		}
	}), nil
}

func parseS3Ref(ref string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(ref, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q, want s3://bucket/key", ErrInvalidRef, ref)
	}
	return bucket, key, nil
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
