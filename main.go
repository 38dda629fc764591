package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/aslatter/ec2-tag-instance/internal/config"
	"github.com/aslatter/ec2-tag-instance/internal/tagger"

	"github.com/aws/aws-lambda-go/lambda"
	"golang.org/x/sys/unix"
)

func main() {
	if err := mainErr(); err != nil {
		fmt.Fprintln(os.Stdout, "error:", err)
		os.Exit(1)
	}
}

func mainErr() error {
	if isLambda() {
		return startFunction()
	}

	ctx, close := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
	defer close()

	c, err := getFlags(os.Args[1:])
	if err != nil {
		return err
	}

	s, err := config.Load(ctx, c.opt)
	if err != nil {
		return err
	}

	return tagger.New(s.AwsConfig).Tag(ctx, c.request())
}

// startFunction builds the client once and hands invocations to the Lambda
// runtime. It only returns on start-up failure.
func startFunction() error {
	s, err := config.Load(context.Background(), getEnv())
	if err != nil {
		return err
	}
	log.Printf("[INFO] tagger ready: %s", s)

	lambda.Start(tagger.New(s.AwsConfig).Handle)
	return nil
}
