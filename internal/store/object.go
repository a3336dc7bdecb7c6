// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/log"
)

// UploadObject streams the file at path into bucket under the file's base
// name. A missing bucket is created in the store's region unless auto-create
// is off, in which case it is apperr.NotFound. An unreadable file is apperr.IO.
func (s *Store) UploadObject(ctx context.Context, bucket, path string) (*Result, error) {
	f, info, err := openUpload(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	key := filepath.Base(path)

	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectReader(f); err == nil {
		contentType = mt.String()
	} else {
		log.Debugf("mimetype detect err: path=%s, err=%v", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Wrap(apperr.IO, path, err, "cannot read %s", path)
	}

	ok, err := s.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}

	created := false
	if !ok {
		if !s.autoCreate {
			return nil, apperr.BucketNotFound(bucket)
		}
		log.Infof("bucket missing, creating: bucket=%s", bucket)
		if _, err := s.createBucket(ctx, bucket, ""); err != nil {
			return nil, err
		}
		created = true
	}

	_, err = s.api.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:        awsv2.String(bucket),
		Key:           awsv2.String(key),
		Body:          f,
		ContentLength: awsv2.Int64(info.Size()),
		ContentType:   awsv2.String(contentType),
	})
	if err != nil {
		return nil, s.fromAWS(err, "upload object", bucket, key)
	}

	return &Result{
		Message: fmt.Sprintf("Uploaded %s to %s.", key, bucket),
		Bucket:  bucket,
		Key:     key,
		Path:    path,
		Created: created,
	}, nil
}

func openUpload(path string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.IO, path, err, "cannot open %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, apperr.Wrap(apperr.IO, path, err, "cannot stat %s", path)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, apperr.New(apperr.IO, path, "%s is a directory", path)
	}
	return f, info, nil
}

// DeleteObject removes key from bucket. Both must exist.
func (s *Store) DeleteObject(ctx context.Context, bucket, key string) (*Result, error) {
	ok, err := s.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BucketNotFound(bucket)
	}

	ok, err = s.KeyExists(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.KeyNotFound(bucket, key)
	}

	_, err = s.api.DeleteObject(ctx, &s3v2.DeleteObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, s.fromAWS(err, "delete object", bucket, key)
	}

	return &Result{
		Message: fmt.Sprintf("Object %s deleted from bucket %s.", key, bucket),
		Bucket:  bucket,
		Key:     key,
	}, nil
}

// GetObject downloads key from bucket into the store's directory, named after
// the key's base name. Only the key is checked; a missing bucket reads as a
// missing key. The body lands in a temporary file that is renamed into place
// once fully written.
func (s *Store) GetObject(ctx context.Context, bucket, key string) (*Result, error) {
	name := filepath.Base(filepath.FromSlash(key))
	if name == "." || name == string(filepath.Separator) {
		return nil, apperr.New(apperr.Argument, key, "key %s does not name a file", key)
	}

	ok, err := s.KeyExists(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.KeyNotFound(bucket, key)
	}

	out, err := s.api.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, s.fromAWS(err, "get object", bucket, key)
	}
	defer out.Body.Close()

	dest := filepath.Join(s.dir, name)
	if err := writeAtomic(dest, out.Body); err != nil {
		return nil, err
	}

	log.Debugf("object written: bucket=%s, key=%s, path=%s", bucket, key, dest)
	return &Result{
		Message: fmt.Sprintf("Object downloaded to %s.", dest),
		Bucket:  bucket,
		Key:     key,
		Path:    dest,
	}, nil
}

// writeAtomic copies r into dest through a sibling temp file.
func writeAtomic(dest string, r io.Reader) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Wrap(apperr.IO, dir, err, "cannot create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".s3cli-get-*")
	if err != nil {
		return apperr.Wrap(apperr.IO, dest, err, "cannot write %s", dest)
	}
	tmpName := tmp.Name()
	_ = tmp.Chmod(0o644)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.Wrap(apperr.IO, dest, err, "cannot write %s", dest)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperr.Wrap(apperr.IO, dest, err, "cannot write %s", dest)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return apperr.Wrap(apperr.IO, dest, err, "cannot write %s", dest)
	}
	return nil
}
