package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Violation is the kind of integrity constraint a statement broke.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationUnique
	ViolationForeignKey
	ViolationCheck
	ViolationNotNull
)

// Constraint describes a constraint violation reported by postgres.
type Constraint struct {
	Violation Violation
	Name      string
	Table     string
}

// ConstraintOf reports which constraint err violated. ok is false when err is
// not a postgres integrity violation.
func ConstraintOf(err error) (c Constraint, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return Constraint{}, false
	}

	c = Constraint{Name: pgErr.ConstraintName, Table: pgErr.TableName}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		c.Violation = ViolationUnique
	case pgerrcode.ForeignKeyViolation:
		c.Violation = ViolationForeignKey
	case pgerrcode.CheckViolation:
		c.Violation = ViolationCheck
	case pgerrcode.NotNullViolation:
		c.Violation = ViolationNotNull
	default:
		return Constraint{}, false
	}

	return c, true
}
