// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package compute

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3cli/s3cli/internal/apperr"
)

type fakeEC2 struct {
	inputs []*ec2v2.RequestSpotInstancesInput
	err    error
}

func (f *fakeEC2) RequestSpotInstances(_ context.Context, in *ec2v2.RequestSpotInstancesInput, _ ...func(*ec2v2.Options)) (*ec2v2.RequestSpotInstancesOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &ec2v2.RequestSpotInstancesOutput{
		SpotInstanceRequests: []types.SpotInstanceRequest{{
			SpotInstanceRequestId: awsv2.String("sir-abc123"),
			State:                 types.SpotInstanceStateOpen,
			Type:                  types.SpotInstanceTypeOneTime,
			SpotPrice:             in.SpotPrice,
		}},
	}, nil
}

func TestNewSpotRequestSpec(t *testing.T) {
	tests := []struct {
		name    string
		opts    []SpecOption
		want    SpotRequestSpec
		wantErr bool
	}{
		{
			name: "defaults",
			want: SpotRequestSpec{ImageID: DefaultImageID, InstanceType: DefaultInstanceType, MaxPrice: DefaultMaxPrice, InstanceCount: 1},
		},
		{
			name: "overrides",
			opts: []SpecOption{WithImageID("ami-123"), WithInstanceType("t3.small"), WithMaxPrice("0.05")},
			want: SpotRequestSpec{ImageID: "ami-123", InstanceType: "t3.small", MaxPrice: "0.05", InstanceCount: 1},
		},
		{
			name: "empty overrides keep defaults",
			opts: []SpecOption{WithImageID(""), WithInstanceType(""), WithMaxPrice("")},
			want: SpotRequestSpec{ImageID: DefaultImageID, InstanceType: DefaultInstanceType, MaxPrice: DefaultMaxPrice, InstanceCount: 1},
		},
		{
			name: "user data is base64",
			opts: []SpecOption{WithUserData([]byte("#!/bin/sh\necho hi\n"))},
			want: SpotRequestSpec{
				ImageID: DefaultImageID, InstanceType: DefaultInstanceType, MaxPrice: DefaultMaxPrice, InstanceCount: 1,
				UserData: base64.StdEncoding.EncodeToString([]byte("#!/bin/sh\necho hi\n")),
			},
		},
		{name: "bad image", opts: []SpecOption{WithImageID("img-1")}, wantErr: true},
		{name: "bad price", opts: []SpecOption{WithMaxPrice("cheap")}, wantErr: true},
		{name: "zero price", opts: []SpecOption{WithMaxPrice("0")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSpotRequestSpec(tt.opts...)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadUserData(t *testing.T) {
	data, err := ReadUserData("")
	require.NoError(t, err)
	assert.Nil(t, data)

	p := filepath.Join(t.TempDir(), "boot.sh")
	require.NoError(t, os.WriteFile(p, []byte("echo boot"), 0o600))
	data, err = ReadUserData(p)
	require.NoError(t, err)
	assert.Equal(t, "echo boot", string(data))

	_, err = ReadUserData(filepath.Join(t.TempDir(), "missing.sh"))
	assert.ErrorIs(t, err, apperr.ErrIO)
}

func TestRequestSpotInstance(t *testing.T) {
	fake := &fakeEC2{}
	p := NewProvisioner(fake, "us-east-1")
	p.token = func() string { return "tok-1" }

	spec, err := NewSpotRequestSpec(WithUserData([]byte("echo hi")))
	require.NoError(t, err)

	res, err := p.RequestSpotInstance(context.Background(), spec)
	require.NoError(t, err)

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, int32(1), awsv2.ToInt32(in.InstanceCount))
	assert.Equal(t, "0.01", awsv2.ToString(in.SpotPrice))
	assert.Equal(t, "tok-1", awsv2.ToString(in.ClientToken))
	assert.Equal(t, DefaultImageID, awsv2.ToString(in.LaunchSpecification.ImageId))
	assert.Equal(t, types.InstanceType("t2.micro"), in.LaunchSpecification.InstanceType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("echo hi")), awsv2.ToString(in.LaunchSpecification.UserData))

	assert.Equal(t, "tok-1", res.ClientToken)
	require.Len(t, res.Requests, 1)
	assert.Equal(t, SpotRequest{ID: "sir-abc123", State: "open", Type: "one-time", Price: "0.01"}, res.Requests[0])
	assert.Equal(t, "Spot instance requested successfully: sir-abc123", res.Message)
	assert.NotNil(t, res.Raw)
}

func TestRequestSpotInstance_NoUserData(t *testing.T) {
	fake := &fakeEC2{}
	spec, err := NewSpotRequestSpec()
	require.NoError(t, err)

	_, err = NewProvisioner(fake, "us-east-1").RequestSpotInstance(context.Background(), spec)
	require.NoError(t, err)
	assert.Nil(t, fake.inputs[0].LaunchSpecification.UserData)
	assert.NotEmpty(t, awsv2.ToString(fake.inputs[0].ClientToken))
}

func TestRequestSpotInstance_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *apperr.Error
	}{
		{"auth", &smithy.GenericAPIError{Code: "UnauthorizedOperation"}, apperr.ErrAuth},
		{"bad param", &smithy.GenericAPIError{Code: "InvalidParameterValue"}, apperr.ErrArgument},
		{"ami missing", &smithy.GenericAPIError{Code: "InvalidAMIID.NotFound"}, apperr.ErrNotFound},
		{"other", &smithy.GenericAPIError{Code: "InsufficientInstanceCapacity"}, apperr.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEC2{err: tt.err}
			spec, err := NewSpotRequestSpec()
			require.NoError(t, err)

			_, err = NewProvisioner(fake, "us-east-1").RequestSpotInstance(context.Background(), spec)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, fake.inputs, 1)
		})
	}
}
