// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/log"
)

// usEast1 rejects an explicit LocationConstraint.
const usEast1 = "us-east-1"

// ListBuckets enumerates every bucket visible to the caller, in the order S3
// returns them.
func (s *Store) ListBuckets(ctx context.Context) ([]Bucket, error) {
	buckets := []Bucket{}

	paginator := s3v2.NewListBucketsPaginator(s.api, &s3v2.ListBucketsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.fromAWS(err, "list buckets", "", "")
		}
		for _, b := range page.Buckets {
			buckets = append(buckets, Bucket{
				Name:         awsv2.ToString(b.Name),
				CreationDate: awsv2.ToTime(b.CreationDate),
			})
		}
	}

	log.Debugf("buckets listed: count=%d", len(buckets))
	return buckets, nil
}

// ListOption narrows an object listing on the server side.
type ListOption func(*s3v2.ListObjectsV2Input)

// WithPrefix limits a listing to keys starting with prefix.
func WithPrefix(prefix string) ListOption {
	return func(in *s3v2.ListObjectsV2Input) {
		if prefix != "" {
			in.Prefix = awsv2.String(prefix)
		}
	}
}

// ListObjects enumerates every object in bucket across all pages. An empty
// bucket yields an empty, non-nil slice.
func (s *Store) ListObjects(ctx context.Context, bucket string, opts ...ListOption) ([]Object, error) {
	ok, err := s.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BucketNotFound(bucket)
	}

	objects := []Object{}

	input := &s3v2.ListObjectsV2Input{Bucket: awsv2.String(bucket)}
	for _, opt := range opts {
		opt(input)
	}

	paginator := s3v2.NewListObjectsV2Paginator(s.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.fromAWS(err, "list objects", bucket, "")
		}
		for _, o := range page.Contents {
			objects = append(objects, Object{
				Key:          awsv2.ToString(o.Key),
				Size:         awsv2.ToInt64(o.Size),
				LastModified: awsv2.ToTime(o.LastModified),
				ETag:         awsv2.ToString(o.ETag),
				StorageClass: string(o.StorageClass),
			})
		}
	}

	log.Debugf("objects listed: bucket=%s, count=%d", bucket, len(objects))
	return objects, nil
}

// CreateBucket creates name in region. An empty region means the store's
// region. An existing bucket is apperr.AlreadyExists and nothing is created.
func (s *Store) CreateBucket(ctx context.Context, name, region string) (*Result, error) {
	ok, err := s.BucketExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, apperr.BucketExists(name)
	}

	return s.createBucket(ctx, name, region)
}

func (s *Store) createBucket(ctx context.Context, name, region string) (*Result, error) {
	if region == "" {
		region = s.region
	}

	input := &s3v2.CreateBucketInput{Bucket: awsv2.String(name)}
	if region != "" && region != usEast1 {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	log.Debugf("creating bucket: bucket=%s, region=%s", name, region)
	if _, err := s.api.CreateBucket(ctx, input); err != nil {
		return nil, apperr.FromAWS(err, apperr.ErrorContext{
			Operation: "create bucket",
			Bucket:    name,
			Region:    region,
		})
	}

	return &Result{
		Message: fmt.Sprintf("Created bucket %s in region %s.", name, region),
		Bucket:  name,
		Region:  region,
		Created: true,
	}, nil
}

// DeleteBucket deletes name. The bucket must exist and be empty.
func (s *Store) DeleteBucket(ctx context.Context, name string) (*Result, error) {
	ok, err := s.BucketExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BucketNotFound(name)
	}

	empty, err := s.bucketEmpty(ctx, name)
	if err != nil {
		return nil, err
	}
	if !empty {
		return nil, apperr.BucketNotEmpty(name)
	}

	if _, err := s.api.DeleteBucket(ctx, &s3v2.DeleteBucketInput{Bucket: awsv2.String(name)}); err != nil {
		return nil, s.fromAWS(err, "delete bucket", name, "")
	}

	return &Result{
		Message: fmt.Sprintf("Empty bucket %s deleted.", name),
		Bucket:  name,
	}, nil
}

// bucketEmpty asks for a single key rather than listing the whole bucket.
func (s *Store) bucketEmpty(ctx context.Context, name string) (bool, error) {
	out, err := s.api.ListObjectsV2(ctx, &s3v2.ListObjectsV2Input{
		Bucket:  awsv2.String(name),
		MaxKeys: awsv2.Int32(1),
	})
	if err != nil {
		return false, s.fromAWS(err, "list objects", name, "")
	}
	return len(out.Contents) == 0 && awsv2.ToInt32(out.KeyCount) == 0, nil
}
