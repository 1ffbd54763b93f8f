package realtime

import (
	"errors"
	"strconv"
)

func parseVenueID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid venue id")
	}
	return id, nil
}
