package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository              *UserRepository
	ResearchRepository          *ResearchRepository
	UnitRepository              *UnitRepository
	RecordRepository            *RecordRepository
	TokenRepository             *TokenRepository
	VerificationTokenRepository *VerificationTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		ResearchRepository:          NewResearchRepository(db),
		UnitRepository:              NewUnitRepository(db),
		RecordRepository:            NewRecordRepository(db),
		TokenRepository:             NewTokenRepository(db),
		VerificationTokenRepository: NewVerificationTokenRepository(db),
	}
}
