package services

import (
	"context"
	"fmt"
	"sync"

	"nepmartadmin/internal/domain"
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/validate"
)

// Broadcast is the view-model for the system update feed: list, append,
// hard delete. No state machine here.
type Broadcast struct {
	remote *remote.Client

	mu   sync.Mutex
	msgs []domain.UpdateMessage
}

func NewBroadcast(rc *remote.Client) *Broadcast {
	return &Broadcast{remote: rc}
}

func (b *Broadcast) Load(ctx context.Context) error {
	msgs, err := b.remote.ListUpdates(ctx)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.msgs = nil
		return err
	}
	b.msgs = msgs
	return nil
}

// Messages returns the feed newest first.
func (b *Broadcast) Messages() []domain.UpdateMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.UpdateMessage, len(b.msgs))
	for i := range b.msgs {
		out[len(b.msgs)-1-i] = b.msgs[i]
	}
	return out
}

// Post validates and appends a message, then reloads the feed.
func (b *Broadcast) Post(ctx context.Context, msg string) error {
	m, ok := validate.Msg(msg)
	if !ok {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if _, err := b.remote.CreateUpdate(ctx, m); err != nil {
		return err
	}
	return b.Load(ctx)
}

func (b *Broadcast) Delete(ctx context.Context, id string) error {
	if err := b.remote.DeleteUpdate(ctx, id); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.msgs {
		if b.msgs[i].ID == id {
			b.msgs = append(b.msgs[:i], b.msgs[i+1:]...)
			break
		}
	}
	return nil
}
