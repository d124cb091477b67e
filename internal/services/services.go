package services

import (
	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/utils"
)

// checkPage rejects negative windows and caps the limit.
func checkPage(params utils.PaginationParams) (utils.PaginationParams, error) {
	errs := &apierrors.ValidationError{}
	if params.Skip < 0 {
		errs.Add("skip", "must be greater than or equal to 0")
	}
	if params.Limit < 0 {
		errs.Add("limit", "must be greater than or equal to 0")
	}
	if err := errs.OrNil(); err != nil {
		return params, err
	}
	if params.Limit > constants.MaxLimit {
		params.Limit = constants.MaxLimit
	}
	return params, nil
}

// preloads maps requested expansions onto repository relation names.
func preloads(expand dto.Expand, relations map[string]string) []string {
	var out []string
	for _, name := range expand.Names() {
		if rel, ok := relations[name]; ok {
			out = append(out, rel)
		}
	}
	return out
}

// setOptional records a supplied field as a column change. Null clears it.
func setOptional[T any](changes map[string]interface{}, column string, o dto.Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		changes[column] = nil
		return
	}
	changes[column] = o.Value
}
