package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/social-verify-api/internal/config"
	"github.com/social-verify-api/internal/domain"
)

// Publisher announces completed verifications on an SNS topic so downstream
// consumers (dashboards, indexers) can react.
type Publisher struct {
	client   *sns.Client
	topicARN string
}

func NewPublisher(cfg *config.Config) (*Publisher, error) {
	if cfg.SNSTopicARN == "" {
		return nil, fmt.Errorf("no SNS topic configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}
	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return &Publisher{client: sns.NewFromConfig(awsCfg, clientOpts...), topicARN: cfg.SNSTopicARN}, nil
}

type verifiedEvent struct {
	WalletAddress string    `json:"wallet_address"`
	SocialHandle  string    `json:"social_handle"`
	Method        string    `json:"verification_method"`
	AttestationID string    `json:"attestation_id"`
	VerifiedAt    time.Time `json:"verified_at"`
}

func (p *Publisher) PublishVerified(ctx context.Context, rec *domain.VerificationRecord) error {
	msg, err := json.Marshal(verifiedEvent{
		WalletAddress: rec.WalletAddress,
		SocialHandle:  rec.SocialHandle,
		Method:        rec.Method,
		AttestationID: rec.Attestation.AttestationID,
		VerifiedAt:    rec.VerifiedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal verified event: %w", err)
	}
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(msg)),
	})
	return err
}
