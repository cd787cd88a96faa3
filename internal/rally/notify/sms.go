package notify

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/rally/pkg/idx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SMSSender delivers a text message and returns the provider's message id.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

// snsPublisher is the slice of *sns.Client the sender uses.
type snsPublisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender sends SMS through AWS SNS direct-to-phone publishing.
type SNSSender struct {
	client   snsPublisher
	senderID string
}

// NewSNSSender loads AWS credentials from the default chain for region.
func NewSNSSender(ctx context.Context, region, senderID string) (*SNSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SNSSender{client: sns.NewFromConfig(awsCfg), senderID: senderID}, nil
}

func (s *SNSSender) SendSMS(ctx context.Context, to, body string) (string, error) {
	in := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	}
	if s.senderID != "" {
		in.MessageAttributes["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}

	out, err := s.client.Publish(ctx, in)
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}

// LogSMSSender writes messages to the request logger instead of sending
// them. Used in development and tests.
type LogSMSSender struct{}

func (LogSMSSender) SendSMS(ctx context.Context, to, body string) (string, error) {
	id := "log-" + idx.New().String()
	slogx.FromContext(ctx).Info("sms (not sent)", "to", to, "body", body, "message_id", id)
	return id, nil
}
