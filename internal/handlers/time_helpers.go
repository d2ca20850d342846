package handlers

import "time"

func parseSlotIn(date, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hm, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(time.Minute), nil
}
