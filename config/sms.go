package config

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient sends transactional SMS through AWS SNS. SMS delivery is a
// best-effort side channel; callers must not fail a workflow on send errors.
type SNSClient struct {
	client *sns.Client
}

func NewSNSClient(ctx context.Context) (*SNSClient, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		return nil, fmt.Errorf("sms not configured (AWS_REGION)")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(cfg)}, nil
}

func (s *SNSClient) SendSMS(ctx context.Context, to, body string) error {
	if to == "" || body == "" {
		return fmt.Errorf("sms requires recipient and body")
	}
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &to,
		Message:     &body,
	})
	return err
}
