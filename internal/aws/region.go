// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/s3cli/s3cli/internal/log"
)

// DefaultRegion is used when no other source yields a region.
const DefaultRegion = "us-west-2"

// RegionSource names the step of the resolution chain that produced a region.
type RegionSource string

const (
	SourceOverride RegionSource = "override"
	SourceEnv      RegionSource = "environment"
	SourceProfile  RegionSource = "profile"
	SourceFallback RegionSource = "fallback"
)

// regionStep is one link of the resolution chain. resolve returns "" when the
// step has nothing to offer.
type regionStep struct {
	source  RegionSource
	resolve func(ctx context.Context, s Settings) string
}

var regionChain = []regionStep{
	{SourceOverride, func(_ context.Context, s Settings) string { return RegionFromOverride(s) }},
	{SourceEnv, func(_ context.Context, _ Settings) string { return RegionFromEnv() }},
	{SourceProfile, RegionFromProfile},
}

// ResolveRegion walks the chain explicit override, environment, shared profile
// and finally DefaultRegion. It never fails.
func ResolveRegion(ctx context.Context, s Settings) (string, RegionSource) {
	for _, step := range regionChain {
		if r := step.resolve(ctx, s); r != "" {
			log.Debugf("region resolved: region=%s, source=%s", r, step.source)
			return r, step.source
		}
	}
	log.Debugf("region resolved: region=%s, source=%s", DefaultRegion, SourceFallback)
	return DefaultRegion, SourceFallback
}

// RegionFromOverride returns the explicitly requested region.
func RegionFromOverride(s Settings) string {
	return strings.TrimSpace(s.Region)
}

// RegionFromEnv returns AWS_REGION, else AWS_DEFAULT_REGION.
func RegionFromEnv() string {
	for _, k := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// RegionFromProfile reads the region of the selected shared config profile.
// The profile is s.Profile, else AWS_PROFILE, else "default". Any failure to
// read the profile yields "".
func RegionFromProfile(ctx context.Context, s Settings) string {
	profile := s.Profile
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}
	if profile == "" {
		profile = "default"
	}

	files := s.SharedConfigFiles
	if len(files) == 0 {
		if f := os.Getenv("AWS_CONFIG_FILE"); f != "" {
			files = []string{f}
		}
	}

	var optFns []func(*config.LoadSharedConfigOptions)
	if len(files) > 0 {
		optFns = append(optFns, func(o *config.LoadSharedConfigOptions) {
			o.ConfigFiles = files
		})
	}

	sc, err := config.LoadSharedConfigProfile(ctx, profile, optFns...)
	if err != nil {
		log.Tracef("profile region lookup failed: profile=%s, err=%v", profile, err)
		return ""
	}
	return sc.Region
}
