package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/synapsehub/support-portal/internal/domain"
)

// PendingCodeRepo stores one-time verification codes keyed by email.
// PK: email. The expires_at attribute is registered as the table TTL, so
// DynamoDB eventually reclaims abandoned entries; the verifier still checks
// expiry itself because TTL deletion is not immediate.
type PendingCodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPendingCodeRepo(client *dynamodb.Client, tableName string) *PendingCodeRepo {
	return &PendingCodeRepo{client: client, tableName: tableName}
}

func (r *PendingCodeRepo) Put(ctx context.Context, pc *domain.PendingCode) error {
	item, err := attributevalue.MarshalMap(pc)
	if err != nil {
		return fmt.Errorf("marshal pending code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PendingCodeRepo) Get(ctx context.Context, email string) (*domain.PendingCode, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey("email", email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("pending code for %q: %w", email, domain.ErrNotFound)
	}
	var pc domain.PendingCode
	if err := attributevalue.UnmarshalMap(out.Item, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *PendingCodeRepo) Delete(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	return err
}

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}
