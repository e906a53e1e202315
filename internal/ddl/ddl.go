package ddl

import (
	"fmt"

	"github.com/xwb1989/sqlparser"

	"github.com/turbolytics/curator/internal/config"
)

// TableAsset derives a table asset config from a CREATE TABLE statement.
// The primary key columns, when present, become the asset's order_by.
func TableAsset(query string) (*config.Asset, error) {
	stmt, err := sqlparser.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DDL: %w", err)
	}

	create, ok := stmt.(*sqlparser.DDL)
	if !ok || create.Action != sqlparser.CreateStr {
		return nil, fmt.Errorf("expected a CREATE TABLE statement")
	}
	if create.TableSpec == nil {
		return nil, fmt.Errorf("statement has no column definitions")
	}

	asset := &config.Asset{
		Name:       create.NewName.Name.String(),
		Type:       "table",
		TableName:  create.NewName.Name.String(),
		SchemaName: create.NewName.Qualifier.String(),
	}

	for _, index := range create.TableSpec.Indexes {
		if index.Info == nil || !index.Info.Primary {
			continue
		}
		for _, col := range index.Columns {
			asset.OrderBy = append(asset.OrderBy, config.SortKey{
				Key: col.Column.String(),
			})
		}
	}

	return asset, nil
}
