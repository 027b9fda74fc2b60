package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/social-verify-api/internal/domain"
)

// OAuthStateRepo manages pending OAuth handshakes.
// PK: state — the opaque random token is the only lookup key.
type OAuthStateRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOAuthStateRepo(client *dynamodb.Client, tableName string) *OAuthStateRepo {
	return &OAuthStateRepo{client: client, tableName: tableName}
}

func (r *OAuthStateRepo) Put(ctx context.Context, s *domain.OAuthState) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal oauth state: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OAuthStateRepo) Get(ctx context.Context, state string) (*domain.OAuthState, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("state", state),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("oauth state not found: %w", domain.ErrNotFound)
	}
	var s domain.OAuthState
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *OAuthStateRepo) Delete(ctx context.Context, state string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("state", state),
	})
	return err
}
