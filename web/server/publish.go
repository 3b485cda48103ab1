package server

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/disintegration/imaging"
)

const thumbnailSize = 128

// PublisherConfig holds the S3 connection settings for publishing
// finished renders
type PublisherConfig struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// Publisher uploads finished renders and their thumbnails to an
// S3-compatible object store
type Publisher struct {
	config PublisherConfig
	client *s3.S3
}

// PublishResult carries the public URLs of an uploaded render
type PublishResult struct {
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// NewPublisher creates a publisher from the given S3 settings
func NewPublisher(config PublisherConfig) (*Publisher, error) {
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}

	return &Publisher{
		config: config,
		client: s3.New(sess),
	}, nil
}

// Publish uploads the render as PNG together with a thumbnail and
// returns their public URLs
func (p *Publisher) Publish(ctx context.Context, img image.Image) (*PublishResult, error) {
	name := fmt.Sprintf("render_%d", time.Now().UnixNano())
	imageKey := path.Join("renders", name+".png")
	thumbKey := path.Join("renders", name+"_thumb.png")

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding render: %w", err)
	}
	if err := p.upload(ctx, buf.Bytes(), imageKey); err != nil {
		return nil, err
	}

	thumb := imaging.Thumbnail(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	buf.Reset()
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	if err := p.upload(ctx, buf.Bytes(), thumbKey); err != nil {
		return nil, err
	}

	return &PublishResult{
		ImageURL:     p.objectURL(imageKey),
		ThumbnailURL: p.objectURL(thumbKey),
	}, nil
}

func (p *Publisher) upload(ctx context.Context, data []byte, key string) error {
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}

	log.Printf("Uploaded %s (%d bytes)", key, size)
	return nil
}

// objectURL builds the path-style public URL of an uploaded object
func (p *Publisher) objectURL(key string) string {
	endpoint := strings.TrimSuffix(p.config.Endpoint, "/")
	return fmt.Sprintf("%s/%s/%s", endpoint, p.config.Bucket, key)
}
