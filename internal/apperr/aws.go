// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

// ErrorContext carries input context for improving AWS error messages.
type ErrorContext struct {
	Operation string // e.g. "create bucket", "request spot instance"
	Bucket    string
	Key       string
	Region    string
}

// FromAWS classifies an error returned by an AWS SDK call into the taxonomy and
// wraps it with a contextual message while preserving the original error for
// errors.Is/As. An *Error is returned unchanged.
func FromAWS(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return err
	}

	op := nonEmpty(ctx.Operation, "request")
	resource := nonEmpty(ctx.Key, ctx.Bucket)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Wrap(Transport, resource, err, "%s interrupted", op)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case code == "NoSuchBucket":
			return Wrap(NotFound, ctx.Bucket, err, "%s: bucket %s does not exist", op, ctx.Bucket)
		case code == "NoSuchKey":
			return Wrap(NotFound, ctx.Key, err, "%s: key %s does not exist in bucket %s", op, ctx.Key, ctx.Bucket)
		case code == "NotFound", strings.HasSuffix(code, ".NotFound"):
			return Wrap(NotFound, resource, err, "%s: %s not found", op, nonEmpty(resource, "resource"))
		case code == "BucketAlreadyExists", code == "BucketAlreadyOwnedByYou":
			return Wrap(AlreadyExists, ctx.Bucket, err, "%s: bucket %s already exists", op, ctx.Bucket)
		case code == "BucketNotEmpty":
			return Wrap(Conflict, ctx.Bucket, err, "%s: bucket %s is not empty", op, ctx.Bucket)
		case isAuthCode(code):
			return Wrap(Auth, resource, err, "%s: authentication failed (%s)", op, code)
		case code == "InvalidBucketName", code == "InvalidLocationConstraint",
			code == "IllegalLocationConstraintException", code == "InvalidParameterValue",
			code == "InvalidParameterCombination", strings.HasSuffix(code, ".Malformed"):
			return Wrap(Argument, resource, err, "%s: invalid request (%s)", op, code)
		}
	}

	if status := HTTPStatus(err); status != 0 {
		switch status {
		case http.StatusNotFound:
			return Wrap(NotFound, resource, err, "%s: %s not found (404)", op, nonEmpty(resource, "resource"))
		case http.StatusUnauthorized, http.StatusForbidden:
			return Wrap(Auth, resource, err, "%s: access denied (%d)", op, status)
		case http.StatusConflict:
			return Wrap(Conflict, resource, err, "%s: conflict (409)", op)
		}
	}

	return Wrap(Transport, resource, err, "%s failed%s", op, regionSuffix(ctx.Region))
}

// HTTPStatus returns the HTTP status code carried by an SDK response error, or
// 0 when err did not come from an HTTP response.
func HTTPStatus(err error) int {
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		return re.HTTPStatusCode()
	}
	return 0
}

func isAuthCode(code string) bool {
	switch code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken",
		"InvalidToken", "TokenRefreshRequired", "AuthFailure", "UnauthorizedOperation",
		"UnrecognizedClientException":
		return true
	}
	return false
}

func regionSuffix(region string) string {
	if region == "" {
		return ""
	}
	return fmt.Sprintf(" in %s", region)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
