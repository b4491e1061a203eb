package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/specification"
	"ai-thinkspace-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the step revision topic and turns each landed write
// into an append-only history row. History lags the ledger by design; the
// ledger write itself already happened synchronously.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.StepRevisionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal revision message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to get session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if session == nil {
		// Session deleted between the write and this consumer running.
		msg.Ack()
		return
	}

	revision := entity.SessionRevision{
		Id:         uuid.New(),
		SessionId:  payload.SessionId,
		StepNumber: payload.StepNumber,
		Content:    payload.Content,
		CreatedAt:  time.Now(),
	}

	if err := uow.SessionRevisionRepository().Create(ctx, &revision); err != nil {
		log.Printf("[ERROR] Failed to create revision for session %s step %d: %v", payload.SessionId, payload.StepNumber, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
