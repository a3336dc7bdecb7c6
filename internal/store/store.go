// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"strings"
	"time"

	"github.com/s3cli/s3cli/internal/apperr"
	awsx "github.com/s3cli/s3cli/internal/aws"
)

// LookupMode selects how bucket and key existence is determined.
type LookupMode string

const (
	LookupHead LookupMode = "head"
	LookupScan LookupMode = "scan"
)

// LookupModes lists the accepted --lookup values.
var LookupModes = []string{string(LookupHead), string(LookupScan)}

// ParseLookupMode converts a flag value into a LookupMode. Empty is LookupHead.
func ParseLookupMode(s string) (LookupMode, error) {
	switch LookupMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", LookupHead:
		return LookupHead, nil
	case LookupScan:
		return LookupScan, nil
	}
	return "", apperr.New(apperr.Argument, "lookup", "invalid lookup mode %q, must be one of %s",
		s, strings.Join(LookupModes, ", "))
}

// Bucket is one row of a bucket listing.
type Bucket struct {
	Name         string    `json:"name" yaml:"name"`
	CreationDate time.Time `json:"creation_date" yaml:"creation_date"`
}

// Object is one row of an object listing.
type Object struct {
	Key          string    `json:"key" yaml:"key"`
	Size         int64     `json:"size" yaml:"size"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
	ETag         string    `json:"etag" yaml:"etag"`
	StorageClass string    `json:"storage_class" yaml:"storage_class"`
}

// Result reports a successful mutating operation.
type Result struct {
	Message string `json:"message" yaml:"message"`
	Bucket  string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Created bool   `json:"created,omitempty" yaml:"created,omitempty"`
}

func (r *Result) String() string {
	return r.Message
}

// Store runs bucket and object operations against an S3API.
type Store struct {
	api        awsx.S3API
	region     string
	lookup     LookupMode
	autoCreate bool
	dir        string
}

// Option customizes a Store.
type Option func(*Store)

// New returns a Store bound to api. region is where new buckets are created.
// By default existence checks use LookupHead, uploads create a missing bucket
// and downloads land in the working directory.
func New(api awsx.S3API, region string, opts ...Option) *Store {
	s := &Store{
		api:        api,
		region:     region,
		lookup:     LookupHead,
		autoCreate: true,
		dir:        ".",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLookup sets the existence check strategy.
func WithLookup(mode LookupMode) Option {
	return func(s *Store) {
		if mode != "" {
			s.lookup = mode
		}
	}
}

// WithAutoCreate controls whether UploadObject creates a missing bucket.
func WithAutoCreate(on bool) Option {
	return func(s *Store) { s.autoCreate = on }
}

// WithDir sets the directory GetObject writes into.
func WithDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// Region returns the region new buckets are created in.
func (s *Store) Region() string { return s.region }

func (s *Store) fromAWS(err error, op, bucket, key string) error {
	return apperr.FromAWS(err, apperr.ErrorContext{
		Operation: op,
		Bucket:    bucket,
		Key:       key,
		Region:    s.region,
	})
}
