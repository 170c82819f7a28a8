package apperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgresUniqueViolation is the SQLSTATE code for a unique_violation.
const postgresUniqueViolation = "23505"

// constraintReasons maps a unique-constraint name to the BadRequest
// reason it should surface as, mirroring the teacher's
// internal/app.ValidatePGError constraint-name switch (there mapping
// foreign-key violations to "X not found" business errors; here mapping
// unique-violations to the name-conflict reasons spec §4.5 calls out by
// name).
var constraintReasons = map[string]string{
	"taxonomy_term_instance_name_key": "Two taxonomy terms cannot have same name in same instance",
}

// FromPGError translates a *pgconn.PgError from a unique-constraint
// violation into the targeted BadRequest the spec calls for (§4.5,
// §7 "Duplicate-key conflicts on unique-name constraints are translated
// to targeted BadRequest messages"). Any other Postgres error is wrapped
// as InternalError, since the caller could not have known about it.
func FromPGError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return Internal(err)
	}

	if pgErr.Code == postgresUniqueViolation {
		if reason, ok := constraintReasons[pgErr.ConstraintName]; ok {
			return BadRequest("%s", reason)
		}

		return BadRequest("duplicate entry violates %s", pgErr.ConstraintName)
	}

	return Internal(pgErr)
}
