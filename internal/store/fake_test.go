// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package store

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

type fakeObject struct {
	body        []byte
	contentType string
	modified    time.Time
}

type fakeBucket struct {
	created  time.Time
	location string
	objects  map[string]*fakeObject
}

// fakeS3 is an in-memory S3API. Errors mimic the codes the real service
// returns so classification paths are exercised.
type fakeS3 struct {
	mu       sync.Mutex
	buckets  map[string]*fakeBucket
	pageSize int
	headErr  error
	listErr  error
	calls    map[string]int
	created  []*s3v2.CreateBucketInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		buckets: map[string]*fakeBucket{},
		calls:   map[string]int{},
	}
}

func (f *fakeS3) addBucket(name string, keys ...string) {
	b := &fakeBucket{created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), objects: map[string]*fakeObject{}}
	for _, k := range keys {
		b.objects[k] = &fakeObject{body: []byte("content of " + k), modified: b.created}
	}
	f.buckets[name] = b
}

func apiErr(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

// statusErr is an HTTP response error the way the SDK surfaces one.
func statusErr(status int, code string) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      apiErr(code),
		},
	}
}

func (f *fakeS3) hit(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeS3) ListBuckets(_ context.Context, _ *s3v2.ListBucketsInput, _ ...func(*s3v2.Options)) (*s3v2.ListBucketsOutput, error) {
	f.hit("ListBuckets")
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.buckets))
	for n := range f.buckets {
		names = append(names, n)
	}
	sort.Strings(names)

	out := &s3v2.ListBucketsOutput{}
	for _, n := range names {
		out.Buckets = append(out.Buckets, types.Bucket{
			Name:         awsv2.String(n),
			CreationDate: awsv2.Time(f.buckets[n].created),
		})
	}
	return out, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, in *s3v2.HeadBucketInput, _ ...func(*s3v2.Options)) (*s3v2.HeadBucketOutput, error) {
	f.hit("HeadBucket")
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.buckets[awsv2.ToString(in.Bucket)]; !ok {
		return nil, apiErr("NotFound")
	}
	return &s3v2.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3v2.CreateBucketInput, _ ...func(*s3v2.Options)) (*s3v2.CreateBucketOutput, error) {
	f.hit("CreateBucket")
	f.created = append(f.created, in)
	name := awsv2.ToString(in.Bucket)
	if _, ok := f.buckets[name]; ok {
		return nil, apiErr("BucketAlreadyOwnedByYou")
	}
	f.addBucket(name)
	if in.CreateBucketConfiguration != nil {
		f.buckets[name].location = string(in.CreateBucketConfiguration.LocationConstraint)
	}
	return &s3v2.CreateBucketOutput{}, nil
}

func (f *fakeS3) DeleteBucket(_ context.Context, in *s3v2.DeleteBucketInput, _ ...func(*s3v2.Options)) (*s3v2.DeleteBucketOutput, error) {
	f.hit("DeleteBucket")
	name := awsv2.ToString(in.Bucket)
	b, ok := f.buckets[name]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	if len(b.objects) > 0 {
		return nil, apiErr("BucketNotEmpty")
	}
	delete(f.buckets, name)
	return &s3v2.DeleteBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3v2.ListObjectsV2Input, _ ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	f.hit("ListObjectsV2")
	b, ok := f.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}

	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		if strings.HasPrefix(k, awsv2.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if tok := awsv2.ToString(in.ContinuationToken); tok != "" {
		start, _ = strconv.Atoi(tok)
	}
	limit := len(keys)
	if f.pageSize > 0 {
		limit = f.pageSize
	}
	if m := awsv2.ToInt32(in.MaxKeys); m > 0 && int(m) < limit {
		limit = int(m)
	}
	end := start + limit
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3v2.ListObjectsV2Output{KeyCount: awsv2.Int32(int32(end - start))}
	for _, k := range keys[start:end] {
		o := b.objects[k]
		out.Contents = append(out.Contents, types.Object{
			Key:          awsv2.String(k),
			Size:         awsv2.Int64(int64(len(o.body))),
			LastModified: awsv2.Time(o.modified),
			ETag:         awsv2.String(`"` + k + `"`),
			StorageClass: types.ObjectStorageClassStandard,
		})
	}
	if end < len(keys) {
		out.IsTruncated = awsv2.Bool(true)
		out.NextContinuationToken = awsv2.String(strconv.Itoa(end))
	}
	return out, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3v2.HeadObjectInput, _ ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error) {
	f.hit("HeadObject")
	if f.headErr != nil {
		return nil, f.headErr
	}
	b, ok := f.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NotFound")
	}
	if _, ok := b.objects[awsv2.ToString(in.Key)]; !ok {
		return nil, apiErr("NotFound")
	}
	return &s3v2.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.hit("PutObject")
	b, ok := f.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.objects[awsv2.ToString(in.Key)] = &fakeObject{
		body:        body,
		contentType: awsv2.ToString(in.ContentType),
		modified:    time.Now(),
	}
	return &s3v2.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.hit("GetObject")
	b, ok := f.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	o, ok := b.objects[awsv2.ToString(in.Key)]
	if !ok {
		return nil, apiErr("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(o.body))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3v2.DeleteObjectInput, _ ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error) {
	f.hit("DeleteObject")
	b, ok := f.buckets[awsv2.ToString(in.Bucket)]
	if !ok {
		return nil, apiErr("NoSuchBucket")
	}
	delete(b.objects, awsv2.ToString(in.Key))
	return &s3v2.DeleteObjectOutput{}, nil
}
