package config

// Kind groups datasource types by the shape of their backend.
type Kind string

const (
	KindSQL         Kind = "sql"
	KindDocument    Kind = "document"
	KindFilesystem  Kind = "filesystem"
	KindObjectStore Kind = "object_store"
)

// TypeSpec describes a datasource type: the backend kind, the connection
// keys it accepts, and the asset types it can hold.
type TypeSpec struct {
	Kind         Kind
	RequiredKeys []string
	OptionalKeys []string
	AssetTypes   []string
}

// AssetSpec describes the option keys an asset type accepts, beyond the
// keys common to all assets (splitter, order_by, connect_options).
type AssetSpec struct {
	RequiredKeys []string
	OptionalKeys []string
}

var datasourceTypes = map[string]TypeSpec{
	"postgres": {
		Kind:         KindSQL,
		RequiredKeys: []string{"connection_string"},
		AssetTypes:   []string{"table", "query"},
	},
	"sqlite": {
		Kind:         KindSQL,
		RequiredKeys: []string{"connection_string"},
		AssetTypes:   []string{"table", "query"},
	},
	"mongodb": {
		Kind:         KindDocument,
		RequiredKeys: []string{"connection_string"},
		AssetTypes:   []string{"collection"},
	},
	"pandas_filesystem": {
		Kind:         KindFilesystem,
		RequiredKeys: []string{"base_directory"},
		AssetTypes:   []string{"csv", "parquet"},
	},
	"spark_filesystem": {
		Kind:         KindFilesystem,
		RequiredKeys: []string{"base_directory"},
		AssetTypes:   []string{"csv", "parquet"},
	},
	"pandas_s3": {
		Kind:         KindObjectStore,
		RequiredKeys: []string{"bucket"},
		OptionalKeys: []string{"region", "endpoint", "force_path_style"},
		AssetTypes:   []string{"csv", "parquet"},
	},
	"spark_s3": {
		Kind:         KindObjectStore,
		RequiredKeys: []string{"bucket"},
		OptionalKeys: []string{"region", "endpoint", "force_path_style"},
		AssetTypes:   []string{"csv", "parquet"},
	},
	"pandas_gcs": {
		Kind:         KindObjectStore,
		RequiredKeys: []string{"bucket_or_name"},
		AssetTypes:   []string{"csv", "parquet"},
	},
	"pandas_abs": {
		Kind:         KindObjectStore,
		RequiredKeys: []string{"container"},
		OptionalKeys: []string{"account_url"},
		AssetTypes:   []string{"csv", "parquet"},
	},
}

var assetTypes = map[string]AssetSpec{
	"table": {
		RequiredKeys: []string{"table_name"},
		OptionalKeys: []string{"schema_name"},
	},
	"query": {
		RequiredKeys: []string{"query"},
	},
	"collection": {
		RequiredKeys: []string{"collection_name"},
		OptionalKeys: []string{"database"},
	},
	"csv": {
		OptionalKeys: []string{"delimiter", "header", "infer_schema", "glob"},
	},
	"parquet": {
		OptionalKeys: []string{"glob"},
	},
}

var splitterMethods = map[string]struct{}{
	"split_on_column_value":           {},
	"split_on_year":                   {},
	"split_on_year_and_month":         {},
	"split_on_year_and_month_and_day": {},
	"split_on_mod_integer":            {},
	"split_on_divided_integer":        {},
}

// DatasourceType returns the spec for a datasource type tag.
func DatasourceType(name string) (TypeSpec, bool) {
	spec, ok := datasourceTypes[name]
	return spec, ok
}

// AssetType returns the spec for an asset type tag.
func AssetType(name string) (AssetSpec, bool) {
	spec, ok := assetTypes[name]
	return spec, ok
}

func knownSplitterMethod(method string) bool {
	_, ok := splitterMethods[method]
	return ok
}

func (s TypeSpec) allowsAssetType(name string) bool {
	for _, t := range s.AssetTypes {
		if t == name {
			return true
		}
	}
	return false
}
