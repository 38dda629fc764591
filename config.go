package main

import (
	"errors"
	"flag"
	"os"
	"reflect"

	"github.com/aslatter/ec2-tag-instance/internal/config"
	"github.com/aslatter/ec2-tag-instance/internal/tagger"
)

// one-shot invocation from a shell
type cfg struct {
	instanceId string
	tagKey     string
	tagValue   string

	opt config.Options
}

func getFlags(args []string) (*cfg, error) {
	var c cfg
	fs := flag.NewFlagSet("ec2-tag-instance", flag.ContinueOnError)
	fs.StringVar(&c.instanceId, "instanceId", "", "EC2 instance-id to tag")
	fs.StringVar(&c.tagKey, "tagKey", "", "tag key to apply")
	fs.StringVar(&c.tagValue, "tagValue", "", "tag value to apply")
	fs.StringVar(&c.opt.Region, "region", os.Getenv("AWS_REGION"), "AWS region")
	fs.StringVar(&c.opt.Endpoint, "endpoint", "", "override the AWS endpoint")
	fs.StringVar(&c.opt.Account, "account", "", "expected AWS account-id (optional)")
	fs.StringVar(&c.opt.AccessKeyID, "accessKeyId", os.Getenv("TAGGER_ACCESS_KEY_ID"), "static access key (optional)")
	fs.StringVar(&c.opt.SecretAccessKey, "secretAccessKey", os.Getenv("TAGGER_SECRET_ACCESS_KEY"), "static secret key (optional)")
	fs.StringVar(&c.opt.SessionToken, "sessionToken", os.Getenv("TAGGER_SESSION_TOKEN"), "static session token (optional)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var el []error

	// only the top-level strings are required
	v := reflect.ValueOf(c)
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		sf := v.Type().Field(i)

		if sf.Type.Kind() == reflect.String && f.IsZero() {
			el = append(el, errors.New("flag -"+sf.Name+" is required"))
		}
	}

	if len(el) != 0 {
		return nil, errors.Join(el...)
	}

	return &c, nil
}

func (c *cfg) request() tagger.Request {
	return tagger.Request{
		InstanceID: c.instanceId,
		TagKey:     c.tagKey,
		TagValue:   c.tagValue,
	}
}

// function mode reads everything from the environment
func getEnv() config.Options {
	return config.Options{
		Region:   os.Getenv("AWS_REGION"),
		Endpoint: os.Getenv("TAGGER_ENDPOINT"),
		Account:  os.Getenv("TAGGER_ACCOUNT"),

		AccessKeyID:     os.Getenv("TAGGER_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("TAGGER_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("TAGGER_SESSION_TOKEN"),
	}
}

func isLambda() bool {
	return os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""
}
