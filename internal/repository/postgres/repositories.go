package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Accounts  *AccountRepository
	Blocklist *BlocklistRepository
	Audit     *AuditRepository
	Sessions  *SessionRepository
}

// NewRepositories wires all repositories backed by the provided pool.
// lockoutThreshold is the failed-attempt count at which accounts lock.
func NewRepositories(pool *pgxpool.Pool, lockoutThreshold int) *Repositories {
	return &Repositories{
		Accounts:  NewAccountRepository(pool, lockoutThreshold),
		Blocklist: NewBlocklistRepository(pool),
		Audit:     NewAuditRepository(pool),
		Sessions:  NewSessionRepository(pool),
	}
}
