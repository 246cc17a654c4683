package service

import (
	"time"

	"github.com/sangkips/optica-api/internal/domain/entity"
)

// Calendar answers "what day is it" in the store's timezone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: time.Now}
}

// WithClock replaces time.Now, mainly for tests.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: now}
}

func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Calendar) Today() entity.Date {
	return entity.DateOf(c.Now())
}
