package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"medication-tracker/internal/domain/medications"
)

// UnitOfWork ejecuta fn dentro de una transacción de database/sql.
type UnitOfWork struct {
	db  *sql.DB
	loc *time.Location
}

func NewUnitOfWork(db *sql.DB, loc *time.Location) *UnitOfWork {
	return &UnitOfWork{db: db, loc: loc}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx medications.TxRepos) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// el stock se lee y se reescribe: dos toggles concurrentes se serializan en la fila.
	meds := NewMedicationsRepo(tx, u.loc)
	meds.forUpdate = true

	if err := fn(ctx, medications.TxRepos{
		Medications: meds,
		Doses:       NewDosesRepo(tx, u.loc),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
