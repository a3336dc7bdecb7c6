// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package compute

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/google/uuid"

	"github.com/s3cli/s3cli/internal/apperr"
	awsx "github.com/s3cli/s3cli/internal/aws"
	"github.com/s3cli/s3cli/internal/log"
)

// Defaults for a spot request when neither flags nor config supply a value.
const (
	DefaultImageID      = "ami-0c47a507d2c485dff"
	DefaultInstanceType = "t2.micro"
	DefaultMaxPrice     = "0.01"
)

// SpotRequestSpec describes a single one-instance spot request. Build it with
// NewSpotRequestSpec; the zero value is not valid.
type SpotRequestSpec struct {
	ImageID       string `json:"image_id" yaml:"image_id"`
	InstanceType  string `json:"instance_type" yaml:"instance_type"`
	MaxPrice      string `json:"max_price" yaml:"max_price"`
	InstanceCount int32  `json:"instance_count" yaml:"instance_count"`
	// UserData is the base64 encoded bootstrap script, empty for none.
	UserData string `json:"-" yaml:"-"`
}

// SpecOption adjusts a SpotRequestSpec under construction.
type SpecOption func(*SpotRequestSpec)

// WithImageID overrides the machine image. Empty keeps the default.
func WithImageID(id string) SpecOption {
	return func(s *SpotRequestSpec) {
		if id != "" {
			s.ImageID = id
		}
	}
}

// WithInstanceType overrides the instance shape. Empty keeps the default.
func WithInstanceType(t string) SpecOption {
	return func(s *SpotRequestSpec) {
		if t != "" {
			s.InstanceType = t
		}
	}
}

// WithMaxPrice overrides the hourly price ceiling. Empty keeps the default.
func WithMaxPrice(p string) SpecOption {
	return func(s *SpotRequestSpec) {
		if p != "" {
			s.MaxPrice = p
		}
	}
}

// WithUserData sets the raw bootstrap script. It is encoded as base64.
func WithUserData(script []byte) SpecOption {
	return func(s *SpotRequestSpec) {
		if len(script) > 0 {
			s.UserData = base64.StdEncoding.EncodeToString(script)
		} else {
			s.UserData = ""
		}
	}
}

// NewSpotRequestSpec builds a validated spec from the defaults plus opts.
// InstanceCount is always 1.
func NewSpotRequestSpec(opts ...SpecOption) (SpotRequestSpec, error) {
	spec := SpotRequestSpec{
		ImageID:       DefaultImageID,
		InstanceType:  DefaultInstanceType,
		MaxPrice:      DefaultMaxPrice,
		InstanceCount: 1,
	}
	for _, opt := range opts {
		opt(&spec)
	}

	if !strings.HasPrefix(spec.ImageID, "ami-") {
		return SpotRequestSpec{}, apperr.New(apperr.Argument, "ami", "invalid image id %q", spec.ImageID)
	}
	if p, err := strconv.ParseFloat(spec.MaxPrice, 64); err != nil || p <= 0 {
		return SpotRequestSpec{}, apperr.New(apperr.Argument, "max-price", "invalid max price %q", spec.MaxPrice)
	}
	return spec, nil
}

// ReadUserData loads a bootstrap script from path. An empty path is no script.
func ReadUserData(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.IO, path, err, "cannot read user data %s", path)
	}
	return data, nil
}

// SpotRequest is one entry of the provider's response.
type SpotRequest struct {
	ID    string `json:"id" yaml:"id"`
	State string `json:"state" yaml:"state"`
	Type  string `json:"type" yaml:"type"`
	Price string `json:"price" yaml:"price"`
}

// SpotResult reports a submitted request.
type SpotResult struct {
	Message     string                            `json:"message" yaml:"message"`
	ClientToken string                            `json:"client_token" yaml:"client_token"`
	Spec        SpotRequestSpec                   `json:"spec" yaml:"spec"`
	Requests    []SpotRequest                     `json:"requests" yaml:"requests"`
	Raw         *ec2v2.RequestSpotInstancesOutput `json:"-" yaml:"-"`
}

// Provisioner submits spot requests through an EC2API.
type Provisioner struct {
	api    awsx.EC2API
	region string
	token  func() string
}

// NewProvisioner returns a Provisioner bound to api.
func NewProvisioner(api awsx.EC2API, region string) *Provisioner {
	return &Provisioner{
		api:    api,
		region: region,
		token:  func() string { return uuid.New().String() },
	}
}

// RequestSpotInstance submits exactly one request for exactly one instance.
// It does not wait for fulfillment and does not retry.
func (p *Provisioner) RequestSpotInstance(ctx context.Context, spec SpotRequestSpec) (*SpotResult, error) {
	token := p.token()

	launch := &types.RequestSpotLaunchSpecification{
		ImageId:      awsv2.String(spec.ImageID),
		InstanceType: types.InstanceType(spec.InstanceType),
	}
	if spec.UserData != "" {
		launch.UserData = awsv2.String(spec.UserData)
	}

	input := &ec2v2.RequestSpotInstancesInput{
		ClientToken:         awsv2.String(token),
		InstanceCount:       awsv2.Int32(1),
		SpotPrice:           awsv2.String(spec.MaxPrice),
		LaunchSpecification: launch,
	}

	log.Debugf("requesting spot instance: ami=%s, type=%s, price=%s, token=%s",
		spec.ImageID, spec.InstanceType, spec.MaxPrice, token)

	out, err := p.api.RequestSpotInstances(ctx, input)
	if err != nil {
		return nil, apperr.FromAWS(err, apperr.ErrorContext{
			Operation: "request spot instance",
			Region:    p.region,
		})
	}

	result := &SpotResult{
		ClientToken: token,
		Spec:        spec,
		Requests:    []SpotRequest{},
		Raw:         out,
	}
	ids := []string{}
	for _, r := range out.SpotInstanceRequests {
		sr := SpotRequest{
			ID:    awsv2.ToString(r.SpotInstanceRequestId),
			State: string(r.State),
			Type:  string(r.Type),
			Price: awsv2.ToString(r.SpotPrice),
		}
		result.Requests = append(result.Requests, sr)
		ids = append(ids, sr.ID)
	}
	result.Message = fmt.Sprintf("Spot instance requested successfully: %s", strings.Join(ids, ", "))

	return result, nil
}
