package user

import (
	"context"
	"sort"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu     sync.RWMutex
	nextId int
	data   map[int]User
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{data: map[int]User{}}
}

func (s *RepositoryStub) CreateUser(ctx context.Context, user User) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	user.Id = s.nextId
	s.data[user.Id] = user
	return user.Id, nil
}

func (s *RepositoryStub) GetUser(ctx context.Context, id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *RepositoryStub) GetUserByUid(ctx context.Context, uid string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *RepositoryStub) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.data[userId]
	if !ok {
		return User{}, ErrUserNotFound
	}
	existing.DisplayName = user.DisplayName
	existing.Cohort = user.Cohort
	existing.Group = user.Group
	lastSynced := existing.Settings.LastSyncedAt
	existing.Settings = user.Settings
	existing.Settings.LastSyncedAt = lastSynced
	s.data[userId] = existing
	return existing, nil
}

func (s *RepositoryStub) UpdateLastSyncedAt(ctx context.Context, userId int, syncedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data[userId]
	if !ok {
		return ErrUserNotFound
	}
	u.Settings.LastSyncedAt = syncedAt
	s.data[userId] = u
	return nil
}

func (s *RepositoryStub) FindUsersWithIcsFeed(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, 0)
	for _, u := range s.data {
		if u.Settings.IcsUrl != "" {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (s *RepositoryStub) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data {
		if u.Username == username {
			return false, nil
		}
	}
	return true, nil
}
