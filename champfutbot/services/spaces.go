package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SpacesService serves card artwork from a DigitalOcean Spaces bucket.
type SpacesService struct {
	client   *s3.Client
	bucket   string
	region   string
	CardRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, cardRoot string) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &SpacesService{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		region:   region,
		CardRoot: strings.TrimPrefix(cardRoot, "/"),
	}, nil
}

// CardImageURL builds the public URL for a card's artwork. An empty image
// key returns an empty URL, the embed just omits the image.
func (s *SpacesService) CardImageURL(imageKey string) string {
	if imageKey == "" {
		return ""
	}
	key := imageKey
	if s.CardRoot != "" {
		key = fmt.Sprintf("%s/%s", s.CardRoot, imageKey)
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

// ImageExists checks whether the artwork object is present in the bucket.
func (s *SpacesService) ImageExists(ctx context.Context, imageKey string) bool {
	key := imageKey
	if s.CardRoot != "" {
		key = fmt.Sprintf("%s/%s", s.CardRoot, imageKey)
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	return err == nil
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}
