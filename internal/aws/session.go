// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/log"
	"github.com/s3cli/s3cli/internal/version"
)

// S3API is the subset of the S3 client used by the object store.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3v2.ListBucketsInput, optFns ...func(*s3v2.Options)) (*s3v2.ListBucketsOutput, error)
	HeadBucket(ctx context.Context, params *s3v2.HeadBucketInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3v2.CreateBucketInput, optFns ...func(*s3v2.Options)) (*s3v2.CreateBucketOutput, error)
	DeleteBucket(ctx context.Context, params *s3v2.DeleteBucketInput, optFns ...func(*s3v2.Options)) (*s3v2.DeleteBucketOutput, error)
	ListObjectsV2(ctx context.Context, params *s3v2.ListObjectsV2Input, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
	HeadObject(ctx context.Context, params *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3v2.DeleteObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error)
}

// EC2API is the subset of the EC2 client used for spot provisioning.
type EC2API interface {
	RequestSpotInstances(ctx context.Context, params *ec2v2.RequestSpotInstancesInput, optFns ...func(*ec2v2.Options)) (*ec2v2.RequestSpotInstancesOutput, error)
}

var (
	_ S3API  = (*s3v2.Client)(nil)
	_ EC2API = (*ec2v2.Client)(nil)
)

// Settings is the explicit configuration handed to the session provider.
type Settings struct {
	// Region is the explicit override; empty defers to the resolution chain.
	Region string
	// Profile selects a shared config profile; empty defers to AWS_PROFILE.
	Profile string
	// Endpoint is an optional custom S3 endpoint URL.
	Endpoint string
	// SharedConfigFiles overrides the shared config files consulted for the
	// profile region.
	SharedConfigFiles []string
}

// Session is an authenticated handle to the object store and compute APIs.
type Session struct {
	Region       string
	RegionSource RegionSource
	Config       awsv2.Config
	S3           S3API
	EC2          EC2API
}

// Opener opens a session. Commands hold one so tests can substitute fakes.
type Opener func(ctx context.Context, s Settings) (*Session, error)

// OpenSession resolves the region, loads SDK config and verifies that
// credentials can be discovered. Missing credentials are an apperr.Auth.
func OpenSession(ctx context.Context, s Settings) (*Session, error) {
	region, source := ResolveRegion(ctx, s)

	opts := []Option{WithRegion(region), WithAppID(version.AppID())}
	if s.Profile != "" {
		opts = append(opts, WithProfile(s.Profile))
	}

	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Auth, s.Profile, err, "failed to load AWS config")
	}

	if err := CheckCredentials(ctx, cfg); err != nil {
		return nil, err
	}

	return &Session{
		Region:       region,
		RegionSource: source,
		Config:       cfg,
		S3:           NewS3(cfg, WithS3Endpoint(s.Endpoint)),
		EC2:          NewEC2(cfg),
	}, nil
}

// CheckCredentials retrieves credentials once so a missing or broken chain is
// reported before any API call.
func CheckCredentials(ctx context.Context, cfg awsv2.Config) error {
	if cfg.Credentials == nil {
		return apperr.New(apperr.Auth, "", "no AWS credentials found")
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		log.Debugf("credential retrieve err: err=%v", err)
		return apperr.Wrap(apperr.Auth, "", err, "no AWS credentials found")
	}
	if !creds.HasKeys() {
		return apperr.Wrap(apperr.Auth, "", errors.New("empty access key"), "no AWS credentials found")
	}
	log.Debugf("credentials found: source=%s", creds.Source)
	return nil
}
