package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

func TestSNSSenderPublishesToPhone(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return aws.ToString(in.PhoneNumber) == "+61412345678" &&
			aws.ToString(in.Message) == "hello" &&
			aws.ToString(in.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue) == "Rally"
	})).Return(&sns.PublishOutput{MessageId: aws.String("msg-1")}, nil)

	s := &SNSSender{client: pub, senderID: "Rally"}
	id, err := s.SendSMS(context.Background(), "+61412345678", "hello")

	require.NoError(t, err)
	require.Equal(t, "msg-1", id)
	pub.AssertExpectations(t)
}

func TestSNSSenderWrapsErrors(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	_, err := (&SNSSender{client: pub}).SendSMS(context.Background(), "+61400000000", "x")
	require.ErrorContains(t, err, "sns publish: throttled")
}

func TestLogSMSSenderReturnsID(t *testing.T) {
	id, err := LogSMSSender{}.SendSMS(context.Background(), "+61400000000", "x")
	require.NoError(t, err)
	require.Contains(t, id, "log-")
}

func TestSMTPMailerCompose(t *testing.T) {
	m := &SMTPMailer{User: "relay-user", From: "noreply@rally.test"}
	msg := m.compose("a@b.com", "Your sign-in link", "body")

	require.Equal(t, []string{"a@b.com"}, msg.GetHeader("To"))
	require.Equal(t, []string{"Your sign-in link"}, msg.GetHeader("Subject"))
	require.Equal(t, []string{`"Rally" <noreply@rally.test>`}, msg.GetHeader("From"))

	m.From = ""
	require.Equal(t, []string{`"Rally" <relay-user>`}, m.compose("a@b.com", "s", "b").GetHeader("From"))
}
