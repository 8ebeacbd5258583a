package dao

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	ce "github.com/link-services/link-gateway-backend/pkg/errors"
	"github.com/link-services/link-gateway-backend/pkg/models"
	"gorm.io/gorm"
)

// postgres unique_violation, the driver surfaces duplicates as a raw
// PgError rather than a gorm error
const pgUniqueViolation = "23505"

func isUniqueViolation(e error) bool {
	var pgError *pgconn.PgError
	if errors.As(e, &pgError) {
		return pgError.Code == pgUniqueViolation
	}
	return errors.Is(e, gorm.ErrDuplicatedKey)
}

// DBErrorToApi converts a gorm or model error into a DaoError with the
// NotFound / BadValidation flags the handler layer maps to status codes.
func DBErrorToApi(e error) *ce.DaoError {
	if e == nil {
		return nil
	}

	var modelError models.Error
	if errors.As(e, &modelError) {
		return &ce.DaoError{Message: modelError.Message, BadValidation: modelError.Validation}
	}
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return &ce.DaoError{Message: "record not found", NotFound: true}
	}
	if isUniqueViolation(e) {
		return &ce.DaoError{Message: "already exists", BadValidation: true}
	}
	daoError := ce.DaoError{Message: "database error"}
	daoError.Wrap(e)
	return &daoError
}
