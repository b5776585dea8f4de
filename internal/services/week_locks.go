package services

import (
	"sync"

	"github.com/alimgiray/shiftledger/internal/models"
)

// weekLocks serializes check-then-write sequences. Mutations of one user's week hold the
// week's read lock plus that user's mutex; finalizing holds the week's write lock.
type weekLocks struct {
	mu    sync.Mutex
	weeks map[models.WeekKey]*sync.RWMutex
	users map[userWeek]*sync.Mutex
}

type userWeek struct {
	userID string
	week   models.WeekKey
}

func newWeekLocks() *weekLocks {
	return &weekLocks{
		weeks: make(map[models.WeekKey]*sync.RWMutex),
		users: make(map[userWeek]*sync.Mutex),
	}
}

// lockUserWeek locks one user's week for a mutation and returns the unlock function
func (l *weekLocks) lockUserWeek(userID string, week models.WeekKey) func() {
	l.mu.Lock()
	weekLock, ok := l.weeks[week]
	if !ok {
		weekLock = &sync.RWMutex{}
		l.weeks[week] = weekLock
	}
	key := userWeek{userID: userID, week: week}
	userLock, ok := l.users[key]
	if !ok {
		userLock = &sync.Mutex{}
		l.users[key] = userLock
	}
	l.mu.Unlock()

	weekLock.RLock()
	userLock.Lock()
	return func() {
		userLock.Unlock()
		weekLock.RUnlock()
	}
}

// lockWeek locks a whole week, waiting for in-flight user mutations to finish
func (l *weekLocks) lockWeek(week models.WeekKey) func() {
	l.mu.Lock()
	weekLock, ok := l.weeks[week]
	if !ok {
		weekLock = &sync.RWMutex{}
		l.weeks[week] = weekLock
	}
	l.mu.Unlock()

	weekLock.Lock()
	return weekLock.Unlock
}
