// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/signin-labs/account-service/internal/domain"
	"github.com/signin-labs/account-service/internal/repository"
)

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu     sync.Mutex
	bySub  map[string]domain.User
	writes int

	// Err, when set, is returned by every call.
	Err error
	// Now stamps created and updated times.
	Now func() time.Time
}

// NewUsers returns an empty store.
func NewUsers() *Users {
	return &Users{bySub: make(map[string]domain.User), Now: time.Now}
}

func (u *Users) GetBySubjectID(_ context.Context, subjectID string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.bySub[subjectID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (u *Users) Upsert(_ context.Context, identity domain.Identity) (*domain.User, bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, false, u.Err
	}
	u.writes++

	now := u.Now()
	user, exists := u.bySub[identity.SubjectID]
	if !exists {
		user = domain.User{
			ID:        uuid.NewString(),
			SubjectID: identity.SubjectID,
			CreatedAt: now,
		}
	}
	user.Apply(identity)
	user.UpdatedAt = now
	u.bySub[identity.SubjectID] = user
	return &user, !exists, nil
}

// Delete removes a user, simulating an account deleted out of band.
func (u *Users) Delete(subjectID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.bySub, subjectID)
}

// Count returns the number of stored users.
func (u *Users) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.bySub)
}

// Writes returns the number of Upsert calls that reached the store.
func (u *Users) Writes() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.writes
}

var _ repository.UserRepository = (*Users)(nil)
