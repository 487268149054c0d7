package services

import (
	"context"
	"errors"
	"sync"

	"nepmartadmin/internal/domain"
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/validate"
)

// DeleteConfirmPhrase must be typed by the operator before a user delete is
// armed. Matched case-insensitively.
const DeleteConfirmPhrase = "delete"

var ErrConfirmMismatch = errors.New("confirmation phrase does not match")

// Directory is the view-model over the registered end users: read-mostly
// list plus a confirmation-gated destructive delete.
type Directory struct {
	remote *remote.Client

	mu    sync.Mutex
	users []domain.User
}

func NewDirectory(rc *remote.Client) *Directory {
	return &Directory{remote: rc}
}

func (d *Directory) Load(ctx context.Context) error {
	users, err := d.remote.ListUsers(ctx)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.users = nil
		return err
	}
	d.users = users
	return nil
}

func (d *Directory) Users() []domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.User, len(d.users))
	copy(out, d.users)
	return out
}

// Delete removes a user for good. The confirmation phrase is checked
// case-insensitively before any network call; a mismatch is a validation
// failure and the remote store is never touched.
func (d *Directory) Delete(ctx context.Context, id, confirm string) error {
	if !validate.ConfirmPhrase(confirm, DeleteConfirmPhrase) {
		return ErrConfirmMismatch
	}
	if err := d.remote.DeleteUser(ctx, id); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID == id {
			d.users = append(d.users[:i], d.users[i+1:]...)
			break
		}
	}
	return nil
}
