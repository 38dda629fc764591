package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Settings is built once per process and shared by every invocation.
type Settings struct {
	AwsConfig aws.Config
	Region    string
	Partition string
	Account   string
	Endpoint  string
}

// Options controls how Settings are resolved. Empty fields fall back to the
// SDK's default resolution chain.
type Options struct {
	Region   string
	Endpoint string

	// if set, the caller identity must belong to this account
	Account string

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Load resolves the AWS configuration and, when an account is expected,
// verifies the caller identity against it.
func Load(ctx context.Context, o Options) (*Settings, error) {
	if (o.AccessKeyID == "") != (o.SecretAccessKey == "") {
		return nil, errors.New("static credentials need both an access key and a secret key")
	}

	ac, err := awsconfig.LoadDefaultConfig(ctx, loadOptions(o)...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	s := &Settings{
		AwsConfig: ac,
		Region:    ac.Region,
		Endpoint:  o.Endpoint,
	}
	if o.Account == "" {
		return s, nil
	}

	err = s.verifyAccount(ctx, sts.NewFromConfig(ac), o.Account)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// String summarizes where calls will go, for the start-up log line.
func (s *Settings) String() string {
	account := s.Account
	if account == "" {
		account = "unverified"
	}
	b := fmt.Sprintf("region=%s account=%s", s.Region, account)
	if s.Partition != "" {
		b += " partition=" + s.Partition
	}
	if s.Endpoint != "" {
		b += " endpoint=" + s.Endpoint
	}
	return b
}

func loadOptions(o Options) []func(*awsconfig.LoadOptions) error {
	var opts []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		opts = append(opts, awsconfig.WithRegion(o.Region))
	}
	if o.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(o.Endpoint))
	}
	if o.AccessKeyID != "" || o.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, o.SessionToken),
		))
	}
	return opts
}

func (s *Settings) verifyAccount(ctx context.Context, c IdentityAPI, account string) error {
	ident, err := c.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("looking up AWS account: %w", err)
	}
	if ident.Account == nil {
		return errors.New("account id unexpectedly nil")
	}
	if ident.Arn == nil {
		return errors.New("caller ARN unexpectedly nil")
	}
	if account != *ident.Account {
		return fmt.Errorf("expected account %q, got %q", account, *ident.Account)
	}

	parsedARN, err := arn.Parse(*ident.Arn)
	if err != nil {
		return fmt.Errorf("parsing identity ARN: %w", err)
	}

	s.Account = *ident.Account
	s.Partition = parsedARN.Partition
	return nil
}
