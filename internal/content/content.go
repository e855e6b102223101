// Package content implements the admin resource controllers: one service per
// remote table, all sharing the same contract. Every write is followed by a
// full unconditional re-read of the table (cache invalidation by reload, not
// merge), so last-writer-wins at the database is the only consistency
// guarantee on offer.
package content

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/enbat/horizon-server-go/internal/errors"
)

// Cache table names, shared with the warm job.
const (
	ProjectsTable     = "projects"
	ServicesTable     = "services"
	ServiceTypesTable = "service_type"
	MembersTable      = "members"
)

var validate = validator.New()

// checkParams maps validator failures onto the client-facing validation
// codes, surfacing the first offending field.
func checkParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return apperrors.MissingRequired(fe.Field())
		}
		return apperrors.InvalidInput(fe.Field(), fe.Tag())
	}
	return apperrors.ValidationError(err.Error())
}
