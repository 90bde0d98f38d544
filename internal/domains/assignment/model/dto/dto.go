package dto

import (
	"time"

	"lifeguard/internal/domains/assignment/model"
	"lifeguard/shared/constant"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"
)

const localDateTimeLayout = "2006-01-02T15:04"

type AssignRequest struct {
	StaffIDs []string `json:"staff_ids" validate:"omitempty,dive,required"`
}

// WindowQuery asks which staff are free for an arbitrary interval.
type WindowQuery struct {
	Start            time.Time
	End              time.Time
	ExcludeBookingID string
}

func (q WindowQuery) Window() model.Window {
	return model.Window{Start: q.Start, End: q.End}
}

// ParseWindowQuery accepts RFC 3339 timestamps or local YYYY-MM-DDTHH:MM values
// in the application timezone.
func ParseWindowQuery(start, end, exclude string) (WindowQuery, error) {
	query := WindowQuery{ExcludeBookingID: exclude}

	if start == constant.Empty || end == constant.Empty {
		return query, failure.BadRequestFromString("start and end are required") //nolint:wrapcheck
	}

	var err error

	if query.Start, err = parseInstant(start); err != nil {
		return query, failure.Validationf("invalid start %q", start) //nolint:wrapcheck
	}

	if query.End, err = parseInstant(end); err != nil {
		return query, failure.Validationf("invalid end %q", end) //nolint:wrapcheck
	}

	if !query.Window().Valid() {
		return query, failure.BadRequestFromString("start must not be after end") //nolint:wrapcheck
	}

	return query, nil
}

func parseInstant(value string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339, value); err == nil {
		return timezone.ToAppTime(at), nil
	}

	return timezone.Parse(localDateTimeLayout, value) //nolint:wrapcheck
}
