// Package timezone keeps every timestamp in the restaurant's local zone, configured through
// APP_TIMEZONE with IANA names such as "Asia/Dhaka" or "UTC".
package timezone

import (
	"fmt"
	"resto/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	mu          sync.RWMutex
	once        sync.Once
	appLocation *time.Location
)

func location() *time.Location {
	once.Do(func() {
		name := config.Get().App.Timezone
		if err := set(name); err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")
		}
	})

	mu.RLock()
	defer mu.RUnlock()

	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// SetLocation switches the application zone. An empty name selects UTC.
func SetLocation(name string) error {
	once.Do(func() {})

	return set(name)
}

func set(name string) error {
	loc := time.UTC

	if name != "" {
		var err error

		loc, err = time.LoadLocation(name)
		if err != nil {
			return fmt.Errorf("loading timezone %q: %w", name, err)
		}
	}

	mu.Lock()
	appLocation = loc
	mu.Unlock()

	log.Debug().Str("timezone", loc.String()).Msg("Application timezone set")

	return nil
}

func Now() time.Time {
	return time.Now().In(location())
}

// Today is the current calendar day in the application zone, as midnight UTC.
// Booking dates are stored the same way so they compare directly.
func Today() time.Time {
	y, m, d := Now().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Parse reads value as wall clock time in the application zone.
func Parse(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time: %w", err)
	}

	return t, nil
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
