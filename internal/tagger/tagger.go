// Package tagger applies a single tag to a single EC2 instance.
package tagger

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EC2API is the subset of the EC2 client used by this package.
type EC2API interface {
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
}

// Tagger holds no per-call state and may be shared between invocations.
type Tagger struct {
	api EC2API
	log *log.Logger
}

// New creates a Tagger backed by an EC2 client built from cfg.
func New(cfg aws.Config) *Tagger {
	return NewFromAPI(ec2.NewFromConfig(cfg), nil)
}

// NewFromAPI creates a Tagger from an explicit API implementation. A nil
// logger writes to stdout.
func NewFromAPI(api EC2API, logger *log.Logger) *Tagger {
	if logger == nil {
		logger = log.New(os.Stdout, "", 0)
	}
	return &Tagger{api: api, log: logger}
}

// Tag applies r.TagKey=r.TagValue to r.InstanceID with one CreateTags call.
func (t *Tagger) Tag(ctx context.Context, r Request) error {
	if err := r.Validate(); err != nil {
		return err
	}

	out, err := t.api.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{r.InstanceID},
		Tags: []types.Tag{
			{Key: aws.String(r.TagKey), Value: aws.String(r.TagValue)},
		},
	})
	if err != nil {
		return &RemoteAPIError{InstanceID: r.InstanceID, Err: err}
	}
	if out == nil {
		return &RemoteAPIError{InstanceID: r.InstanceID, Err: errEmptyResponse}
	}

	t.log.Printf("[INFO] 1 EC2 instance is successfully tagged %s", r.InstanceID)
	return nil
}

// Handle is the function-trigger entrypoint: it decodes the event payload
// and tags the instance it names. Errors are returned to the runtime as-is.
func (t *Tagger) Handle(ctx context.Context, payload json.RawMessage) error {
	r, err := DecodeRequest(payload)
	if err == nil {
		err = t.Tag(ctx, r)
	}
	if err != nil {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			t.log.Printf("error: request %s (%s): %s", lc.AwsRequestID, failureKind(err), err)
		}
		return err
	}
	return nil
}
