package mq

import (
	"context"
	"encoding/json"

	"Savora/app/api/marketplace/internal/svc"

	"github.com/segmentio/kafka-go"
)

// PublishOrderPlaced sends the event on the shared writer, keyed by order id
// so events for one order stay in partition order. A nil writer means
// publishing is disabled.
func PublishOrderPlaced(svcCtx *svc.ServiceContext, evt OrderPlacedEvent) error {
	if svcCtx.KafkaWriter == nil {
		return nil
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return svcCtx.KafkaWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: body,
	})
}
