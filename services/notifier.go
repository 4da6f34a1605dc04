package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// SNSOrderNotifier publishes order.created events so downstream consumers
// (merchant notifications, fulfillment) can react. Publishing is strictly
// best-effort; failures are logged and swallowed.
type SNSOrderNotifier struct {
	client   *sns.Client
	topicARN string
	log      *zap.Logger
}

func NewSNSOrderNotifier(ctx context.Context, topicARN string, log *zap.Logger) (*SNSOrderNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &SNSOrderNotifier{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
		log:      log,
	}, nil
}

func (n *SNSOrderNotifier) OrderCreated(ctx context.Context, order *models.Order) {
	payload := map[string]interface{}{
		"event_type": "order.created",
		"store_id":   order.StoreID,
		"order_id":   order.ID,
		"total":      order.Total,
		"items":      len(order.Items),
		"created_at": order.CreatedAt.Format(time.RFC3339),
	}

	msgBytes, err := json.Marshal(payload)
	if err != nil {
		n.log.Warn("failed to marshal order event", zap.Error(err))
		return
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(msgBytes)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String("order.created"),
			},
		},
	})
	if err != nil {
		n.log.Warn("failed to publish order event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}
