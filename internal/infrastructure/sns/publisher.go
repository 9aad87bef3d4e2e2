package sns

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/synapsehub/support-portal/internal/config"
	"github.com/synapsehub/support-portal/internal/domain"
)

// TicketPublisher relays accepted tickets to an SNS topic. Alternative to
// the Discord-style webhook for teams subscribed via SNS.
type TicketPublisher struct {
	client   *sns.Client
	topicARN string
}

func NewTicketPublisher(cfg *config.Config) (*TicketPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &TicketPublisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

func (p *TicketPublisher) RelayTicket(ctx context.Context, t *domain.SupportTicket) error {
	subject := "Support request: " + t.Title
	message := fmt.Sprintf("Reference: %s\nFrom: %s\n\n%s", t.ReferenceID, t.Email, t.Message)
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	if err != nil {
		return fmt.Errorf("publish ticket to SNS: %v: %w", err, domain.ErrUpstream)
	}
	return nil
}
