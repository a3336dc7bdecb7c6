// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	awsx "github.com/s3cli/s3cli/internal/aws"
)

var created = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func apiErr(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

// memS3 is a map backed S3API. Listings come back in one page.
type memS3 struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte
}

func newMemS3() *memS3 {
	return &memS3{buckets: map[string]map[string][]byte{}}
}

func (m *memS3) add(bucket string, objects map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := map[string][]byte{}
	for k, v := range objects {
		b[k] = []byte(v)
	}
	m.buckets[bucket] = b
}

func (m *memS3) ListBuckets(_ context.Context, _ *s3v2.ListBucketsInput, _ ...func(*s3v2.Options)) (*s3v2.ListBucketsOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.buckets))
	for n := range m.buckets {
		names = append(names, n)
	}
	sort.Strings(names)
	out := &s3v2.ListBucketsOutput{}
	for _, n := range names {
		out.Buckets = append(out.Buckets, types.Bucket{Name: awsv2.String(n), CreationDate: awsv2.Time(created)})
	}
	return out, nil
}

func (m *memS3) HeadBucket(_ context.Context, in *s3v2.HeadBucketInput, _ ...func(*s3v2.Options)) (*s3v2.HeadBucketOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[awsv2.ToString(in.Bucket)]; !ok {
		return nil, apiErr("NotFound")
	}
	return &s3v2.HeadBucketOutput{}, nil
}

func (m *memS3) CreateBucket(_ context.Context, in *s3v2.CreateBucketInput, _ ...func(*s3v2.Options)) (*s3v2.CreateBucketOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := awsv2.ToString(in.Bucket)
	if _, ok := m.buckets[name]; ok {
		return nil, apiErr("BucketAlreadyOwnedByYou")
	}
	m.buckets[name] = map[string][]byte{}
	return &s3v2.CreateBucketOutput{}, nil
}

func (m *memS3) DeleteBucket(_ context.Context, in *s3v2.DeleteBucketInput, _ ...func(*s3v2.Options)) (*s3v2.DeleteBucketOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := awsv2.ToString(in.Bucket)
	b, ok := m.buckets[name]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	if len(b) > 0 {
		return nil, apiErr("BucketNotEmpty")
	}
	delete(m.buckets, name)
	return &s3v2.DeleteBucketOutput{}, nil
}

func (m *memS3) ListObjectsV2(_ context.Context, in *s3v2.ListObjectsV2Input, _ ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	keys := []string{}
	for k := range b {
		if strings.HasPrefix(k, awsv2.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if n := int(awsv2.ToInt32(in.MaxKeys)); n > 0 && n < len(keys) {
		keys = keys[:n]
	}
	out := &s3v2.ListObjectsV2Output{KeyCount: awsv2.Int32(int32(len(keys)))}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{
			Key:          awsv2.String(k),
			Size:         awsv2.Int64(int64(len(b[k]))),
			LastModified: awsv2.Time(created),
			StorageClass: types.ObjectStorageClassStandard,
		})
	}
	return out, nil
}

func (m *memS3) HeadObject(_ context.Context, in *s3v2.HeadObjectInput, _ ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NotFound")
	}
	if _, ok := b[awsv2.ToString(in.Key)]; !ok {
		return nil, apiErr("NotFound")
	}
	return &s3v2.HeadObjectOutput{}, nil
}

func (m *memS3) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	b[awsv2.ToString(in.Key)] = body
	return &s3v2.PutObjectOutput{}, nil
}

func (m *memS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	body, ok := b[awsv2.ToString(in.Key)]
	if !ok {
		return nil, apiErr("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (m *memS3) DeleteObject(_ context.Context, in *s3v2.DeleteObjectInput, _ ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	delete(b, awsv2.ToString(in.Key))
	return &s3v2.DeleteObjectOutput{}, nil
}

// memEC2 records spot requests and answers with one open request.
type memEC2 struct {
	inputs []*ec2v2.RequestSpotInstancesInput
}

func (m *memEC2) RequestSpotInstances(_ context.Context, in *ec2v2.RequestSpotInstancesInput, _ ...func(*ec2v2.Options)) (*ec2v2.RequestSpotInstancesOutput, error) {
	m.inputs = append(m.inputs, in)
	return &ec2v2.RequestSpotInstancesOutput{
		SpotInstanceRequests: []ec2types.SpotInstanceRequest{{
			SpotInstanceRequestId: awsv2.String("sir-1"),
			State:                 ec2types.SpotInstanceStateOpen,
			Type:                  ec2types.SpotInstanceTypeOneTime,
			SpotPrice:             in.SpotPrice,
		}},
	}, nil
}

// fakeOpener hands out a session over the in-memory fakes and records what
// it was asked for.
type fakeOpener struct {
	s3       *memS3
	ec2      *memEC2
	err      error
	calls    int
	settings awsx.Settings
	deadline bool
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{s3: newMemS3(), ec2: &memEC2{}}
}

func (f *fakeOpener) open(ctx context.Context, s awsx.Settings) (*awsx.Session, error) {
	f.calls++
	f.settings = s
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	region := s.Region
	if region == "" {
		region = awsx.DefaultRegion
	}
	return &awsx.Session{
		Region:       region,
		RegionSource: awsx.SourceFallback,
		S3:           f.s3,
		EC2:          f.ec2,
	}, nil
}
