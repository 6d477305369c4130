package service

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// lockRegistry implements the LockRegistry interface. State lives only
// in memory; locks do not survive a restart.
type lockRegistry struct {
	mu      sync.Mutex
	holders map[string]string // userID -> holder display name
}

// NewLockRegistry creates an empty busy-lock registry
func NewLockRegistry() LockRegistry {
	return &lockRegistry{
		holders: make(map[string]string),
	}
}

func (r *lockRegistry) IsBusy(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.holders[userID]
	return busy
}

func (r *lockRegistry) TryAcquire(userID string, holderName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check and set under one lock so two concurrent games can't both
	// start for the same user
	if _, busy := r.holders[userID]; busy {
		return false
	}
	r.holders[userID] = holderName

	log.WithFields(log.Fields{
		"user":   userID,
		"holder": holderName,
	}).Info("Busy lock acquired")
	return true
}

func (r *lockRegistry) Release(userID string, holderName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.holders[userID]; !busy {
		log.Warnf("Release for user %s who holds no lock", userID)
		return
	}
	delete(r.holders, userID)

	log.WithFields(log.Fields{
		"user":   userID,
		"holder": holderName,
	}).Info("Busy lock released")
}
