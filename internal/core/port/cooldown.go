package port

import "flight/internal/core/domain"

type CooldownTracker interface {
	// Check returns a *domain.CooldownActive error when the key has no slot left under policy.
	Check(key domain.CooldownKey, policy domain.Cooldown) error
	// Record counts one invocation against the key.
	Record(key domain.CooldownKey, policy domain.Cooldown)
	// Reserve atomically checks and takes a slot. The reservation must be committed or released.
	Reserve(key domain.CooldownKey, policy domain.Cooldown) (Reservation, error)
}

type Reservation interface {
	// Commit keeps the slot taken by Reserve.
	Commit()
	// Release gives the slot back.
	Release()
}

type CooldownProvider interface {
	Tracker() CooldownTracker
}
