// database/bootstrap.go
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrivision/entities"
	"agrivision/pkg/geo"
)

// OpenSQLite opens the database at path and brings the schema up to date.
func OpenSQLite(path string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := Migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate and the data migrations that AutoMigrate cannot do.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	// Fields saved before area_hectares existed only carry a boundary; note
	// that now, since AutoMigrate adds the column with a zero default.
	legacyFields, err := tableExists(db, "fields")
	if err != nil {
		return err
	}
	if legacyFields {
		has, err := hasColumn(db, "fields", "area_hectares")
		if err != nil {
			return err
		}
		legacyFields = !has
	}

	if err := db.AutoMigrate(
		&entities.Field{},
		&entities.SoilAnalysis{},
		&entities.Activity{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if legacyFields {
		n, err := backfillFieldAreas(db)
		if err != nil {
			return fmt.Errorf("backfill field areas: %w", err)
		}
		log.Info("backfilled field areas", zap.Int("fields", n))
	}
	return nil
}

func tableExists(db *gorm.DB, table string) (bool, error) {
	var name string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name).Error; err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return name != "", nil
}

func hasColumn(db *gorm.DB, table, column string) (bool, error) {
	type colInfo struct {
		Cid       int
		Name      string
		Type      string
		NotNull   int
		DfltValue sql.NullString
		Pk        int
	}
	var cols []colInfo
	if err := db.Raw(fmt.Sprintf(`PRAGMA table_info(%s)`, table)).Scan(&cols).Error; err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	for _, c := range cols {
		if strings.EqualFold(c.Name, column) {
			return true, nil
		}
	}
	return false, nil
}

// backfillFieldAreas recomputes area_hectares from the stored boundary of
// every field that has none. Rows imported with only a WKT outline get their
// boundary JSON restored from it; the others get the WKT copy written.
func backfillFieldAreas(db *gorm.DB) (int, error) {
	type row struct {
		FieldID     uint
		Boundary    string
		BoundaryWKT string
	}
	var rows []row
	if err := db.Raw(`SELECT field_id, COALESCE(boundary, '') AS boundary, COALESCE(boundary_wkt, '') AS boundary_wkt FROM fields WHERE area_hectares IS NULL OR area_hectares = 0`).Scan(&rows).Error; err != nil {
		return 0, err
	}

	n := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			ring, fromWKT, err := legacyRing(r.Boundary, r.BoundaryWKT)
			if err != nil {
				return fmt.Errorf("field %d: %w", r.FieldID, err)
			}
			if ring == nil {
				continue
			}
			upd := map[string]any{"area_hectares": geo.ComputeAreaHectares(ring)}
			if fromWKT {
				b, err := json.Marshal(ring)
				if err != nil {
					return fmt.Errorf("field %d: boundary: %w", r.FieldID, err)
				}
				// raw write so the json serializer does not encode the string again
				if err := tx.Exec(`UPDATE fields SET boundary = ? WHERE field_id = ?`, string(b), r.FieldID).Error; err != nil {
					return err
				}
			} else if wkt, err := ring.WKT(); err == nil {
				upd["boundary_wkt"] = wkt
			}
			if err := tx.Model(&entities.Field{}).Where("field_id = ?", r.FieldID).Updates(upd).Error; err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// legacyRing decodes the JSON boundary, falling back to the WKT column. Both
// empty yields a nil ring.
func legacyRing(boundary, boundaryWKT string) (geo.FieldPolygon, bool, error) {
	if strings.TrimSpace(boundary) != "" {
		var ring geo.FieldPolygon
		if err := json.Unmarshal([]byte(boundary), &ring); err != nil {
			return nil, false, fmt.Errorf("boundary: %w", err)
		}
		return ring, false, nil
	}
	if strings.TrimSpace(boundaryWKT) != "" {
		ring, err := geo.PolygonFromWKT(boundaryWKT)
		if err != nil {
			return nil, false, fmt.Errorf("boundary_wkt: %w", err)
		}
		return ring, true, nil
	}
	return nil, false, nil
}
