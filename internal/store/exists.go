// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"net/http"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/log"
)

// BucketExists reports whether a bucket named name is visible to the caller.
func (s *Store) BucketExists(ctx context.Context, name string) (bool, error) {
	if s.lookup == LookupHead {
		_, err := s.api.HeadBucket(ctx, &s3v2.HeadBucketInput{Bucket: awsv2.String(name)})
		switch {
		case err == nil:
			return true, nil
		case isNotFound(err):
			return false, nil
		case isMoved(err):
			// The bucket lives in another region.
			log.Debugf("head bucket redirected: bucket=%s", name)
			return true, nil
		case isForbidden(err):
			log.Warnf("head bucket forbidden, scanning: bucket=%s", name)
		default:
			return false, s.fromAWS(err, "head bucket", name, "")
		}
	}

	buckets, err := s.ListBuckets(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range buckets {
		if b.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// KeyExists reports whether key is present in bucket. A missing bucket is
// reported as a missing key.
func (s *Store) KeyExists(ctx context.Context, bucket, key string) (bool, error) {
	if s.lookup == LookupHead {
		_, err := s.api.HeadObject(ctx, &s3v2.HeadObjectInput{
			Bucket: awsv2.String(bucket),
			Key:    awsv2.String(key),
		})
		switch {
		case err == nil:
			return true, nil
		case isNotFound(err):
			return false, nil
		case isForbidden(err):
			log.Warnf("head object forbidden, scanning: bucket=%s, key=%s", bucket, key)
		default:
			return false, s.fromAWS(err, "head object", bucket, key)
		}
	}

	paginator := s3v2.NewListObjectsV2Paginator(s.api, &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(bucket),
		Prefix: awsv2.String(key),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if isNotFound(err) {
				return false, nil
			}
			return false, s.fromAWS(err, "list objects", bucket, key)
		}
		for _, o := range page.Contents {
			if awsv2.ToString(o.Key) == key {
				return true, nil
			}
		}
	}
	return false, nil
}

// isNotFound matches the shapes S3 uses for a missing bucket or key. HEAD
// responses carry no body, so only the status code is reliable there.
func isNotFound(err error) bool {
	if apperr.HTTPStatus(err) == http.StatusNotFound {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket", "NoSuchKey":
			return true
		}
	}
	return false
}

func isForbidden(err error) bool {
	if apperr.HTTPStatus(err) == http.StatusForbidden {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "Forbidden", "AccessDenied":
			return true
		}
	}
	return false
}

func isMoved(err error) bool {
	if apperr.HTTPStatus(err) == http.StatusMovedPermanently {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "MovedPermanently", "PermanentRedirect":
			return true
		}
	}
	return false
}
