package apperr

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFromPGError_KnownConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           postgresUniqueViolation,
		ConstraintName: "taxonomy_term_instance_name_key",
	}

	err := FromPGError(pgErr)

	var badReq *BadRequestError
	assert.True(t, errors.As(err, &badReq))
	assert.Equal(t, "Two taxonomy terms cannot have same name in same instance", badReq.Reason)
}

func TestFromPGError_UnknownConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           postgresUniqueViolation,
		ConstraintName: "some_other_key",
	}

	err := FromPGError(pgErr)

	var badReq *BadRequestError
	assert.True(t, errors.As(err, &badReq))
	assert.Contains(t, badReq.Reason, "some_other_key")
}

func TestFromPGError_NonUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42601"}

	err := FromPGError(pgErr)

	var internal *InternalError
	assert.True(t, errors.As(err, &internal))
}

func TestFromPGError_NonPGError(t *testing.T) {
	err := FromPGError(errors.New("boom"))

	var internal *InternalError
	assert.True(t, errors.As(err, &internal))
	assert.Equal(t, "boom", internal.Error())
}
