package worker

import (
	"context"

	"funil.app/crm/internal/queue"
	"funil.app/crm/internal/service"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// MessageGenerator is the slice of service.OutreachService the worker drives.
type MessageGenerator interface {
	GenerateAutoMessagesForLead(ctx context.Context, leadID, campaignID, senderID int64) (*service.GenerateResult, error)
}
