package persistence

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/storesync/backend/internal/domain/shared"
	"github.com/storesync/backend/internal/domain/sync"
)

// Location types recognized in shipping_zone_locations rows.
const (
	zoneLocationCountry  = "country"
	zoneLocationState    = "state"
	zoneLocationPostcode = "postcode"
)

// GormZoneMatcher implements sync.ZoneMatcher over shipping zone location
// rows. Matching prefers the most specific location: postcode, then
// state (stored as COUNTRY:STATE), then country. A trailing "*" on a
// postcode row matches as a prefix.
type GormZoneMatcher struct {
	db *gorm.DB
}

// NewGormZoneMatcher creates a new GormZoneMatcher
func NewGormZoneMatcher(db *gorm.DB) *GormZoneMatcher {
	return &GormZoneMatcher{db: db}
}

// MatchZone resolves the shipping zone covering the destination. Returns
// shared.ErrNotFound when no zone covers it.
func (m *GormZoneMatcher) MatchZone(ctx context.Context, dest sync.Destination) (int, error) {
	var rows []ZoneLocationRow
	if err := m.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return 0, err
	}

	country := strings.ToUpper(strings.TrimSpace(dest.Country))
	state := strings.ToUpper(strings.TrimSpace(dest.State))
	postcode := strings.ToUpper(strings.TrimSpace(dest.Postcode))

	if postcode != "" {
		for _, row := range rows {
			if row.Type != zoneLocationPostcode {
				continue
			}
			code := strings.ToUpper(strings.TrimSpace(row.Code))
			if pattern, ok := strings.CutSuffix(code, "*"); ok {
				if strings.HasPrefix(postcode, pattern) {
					return row.ZoneID, nil
				}
			} else if code == postcode {
				return row.ZoneID, nil
			}
		}
	}

	if country != "" && state != "" {
		wanted := country + ":" + state
		for _, row := range rows {
			if row.Type == zoneLocationState && strings.ToUpper(strings.TrimSpace(row.Code)) == wanted {
				return row.ZoneID, nil
			}
		}
	}

	if country != "" {
		for _, row := range rows {
			if row.Type == zoneLocationCountry && strings.ToUpper(strings.TrimSpace(row.Code)) == country {
				return row.ZoneID, nil
			}
		}
	}

	return 0, shared.ErrNotFound
}

// Ensure GormZoneMatcher implements sync.ZoneMatcher
var _ sync.ZoneMatcher = (*GormZoneMatcher)(nil)
