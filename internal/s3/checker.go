package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"
)

type CheckerOption func(*Checker)

func WithCheckerRegion(region string) CheckerOption {
	return func(c *Checker) {
		c.Region = region
	}
}

func WithCheckerEndpoint(endpoint string) CheckerOption {
	return func(c *Checker) {
		c.Endpoint = endpoint
	}
}

func WithCheckerForcePathStyle(forcePathStyle bool) CheckerOption {
	return func(c *Checker) {
		c.ForcePathStyle = forcePathStyle
	}
}

func WithCheckerLogger(l *zap.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = l
	}
}

type Checker struct {
	name   string
	logger *zap.Logger

	Bucket         string
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

func NewChecker(name string, bucket string, opts ...CheckerOption) *Checker {
	c := &Checker{
		name:   name,
		Bucket: bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) Name() string {
	return c.name
}

func (c *Checker) Check(ctx context.Context) error {
	awsConfig := &aws.Config{
		Region:           aws.String(c.Region),
		S3ForcePathStyle: aws.Bool(c.ForcePathStyle),
	}

	if c.Endpoint != "" {
		awsConfig.Endpoint = aws.String(c.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	c.logger.Debug("checking bucket",
		zap.String("datasource", c.name),
		zap.String("bucket", c.Bucket),
		zap.String("region", c.Region),
	)

	svc := s3.New(sess)
	if _, err := svc.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.Bucket),
	}); err != nil {
		return fmt.Errorf("bucket %q is not accessible: %w", c.Bucket, err)
	}

	return nil
}
