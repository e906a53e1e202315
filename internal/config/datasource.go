package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Datasource is a single named entry under fluent_datasources. Only the
// connection keys permitted by its type spec may be set.
type Datasource struct {
	Name string `yaml:"-"`
	Type string `yaml:"type"`

	// sql / document kinds
	ConnectionString string `yaml:"connection_string,omitempty"`

	// filesystem kind
	BaseDirectory string `yaml:"base_directory,omitempty"`

	// object store kind
	Bucket         string `yaml:"bucket,omitempty"`
	Region         string `yaml:"region,omitempty"`
	Endpoint       string `yaml:"endpoint,omitempty"`
	ForcePathStyle bool   `yaml:"force_path_style,omitempty"`
	BucketOrName   string `yaml:"bucket_or_name,omitempty"`
	Container      string `yaml:"container,omitempty"`
	AccountURL     string `yaml:"account_url,omitempty"`

	Assets Assets `yaml:"assets,omitempty"`
}

// Kind returns the backend kind of the datasource's type.
func (d *Datasource) Kind() Kind {
	spec, _ := DatasourceType(d.Type)
	return spec.Kind
}

// Asset is a named, typed dataset scoped to a datasource.
type Asset struct {
	Name string `yaml:"-"`
	Type string `yaml:"type"`

	// csv / parquet
	Delimiter   string `yaml:"delimiter,omitempty"`
	Header      *bool  `yaml:"header,omitempty"`
	InferSchema *bool  `yaml:"infer_schema,omitempty"`
	Glob        string `yaml:"glob,omitempty"`

	// table / query
	SchemaName string `yaml:"schema_name,omitempty"`
	TableName  string `yaml:"table_name,omitempty"`
	Query      string `yaml:"query,omitempty"`

	// collection
	Database       string `yaml:"database,omitempty"`
	CollectionName string `yaml:"collection_name,omitempty"`

	Splitter       *Splitter      `yaml:"splitter,omitempty"`
	OrderBy        []SortKey      `yaml:"order_by,omitempty"`
	ConnectOptions map[string]any `yaml:"connect_options,omitempty"`
}

// Splitter declares how an asset's data is partitioned by a column.
type Splitter struct {
	MethodName string `yaml:"method_name"`
	ColumnName string `yaml:"column_name"`
}

// SortKey orders partitions or results by a column. The YAML form is either
// a mapping {key, reverse} or a shorthand string, with a leading "-" for
// descending. Both normalize to the same value.
type SortKey struct {
	Key     string `yaml:"key"`
	Reverse bool   `yaml:"reverse"`
}

func (s *SortKey) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return &Error{Field: "order_by", Reason: err.Error()}
		}
		key := raw
		reverse := false
		switch {
		case strings.HasPrefix(raw, "-"):
			key = raw[1:]
			reverse = true
		case strings.HasPrefix(raw, "+"):
			key = raw[1:]
		}
		if key == "" {
			return &Error{Field: "order_by", Reason: fmt.Sprintf("empty sort key %q", raw)}
		}
		s.Key = key
		s.Reverse = reverse
		return nil
	case yaml.MappingNode:
		type plain SortKey
		var p plain
		if err := node.Decode(&p); err != nil {
			return &Error{Field: "order_by", Reason: err.Error()}
		}
		if p.Key == "" {
			return &Error{Field: "order_by", Reason: "missing required field \"key\""}
		}
		*s = SortKey(p)
		return nil
	default:
		return &Error{Field: "order_by", Reason: "sort key must be a string or a mapping"}
	}
}

// Datasources is the fluent_datasources mapping. Document order is
// preserved so that marshaling round-trips.
type Datasources struct {
	names   []string
	sources map[string]*Datasource
}

func (d *Datasources) Len() int {
	return len(d.names)
}

func (d *Datasources) Names() []string {
	return d.names
}

func (d *Datasources) Get(name string) (*Datasource, bool) {
	ds, ok := d.sources[name]
	return ds, ok
}

func (d *Datasources) add(ds *Datasource) {
	if d.sources == nil {
		d.sources = make(map[string]*Datasource)
	}
	d.names = append(d.names, ds.Name)
	d.sources[ds.Name] = ds
}

func (d Datasources) IsZero() bool {
	return len(d.names) == 0
}

func (d *Datasources) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("fluent_datasources must be a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, ok := d.sources[name]; ok {
			return &Error{Datasource: name, Reason: "duplicate datasource name"}
		}

		ds, err := decodeDatasource(name, node.Content[i+1])
		if err != nil {
			return err
		}
		d.add(ds)
	}

	return nil
}

func (d Datasources) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range d.names {
		var key, value yaml.Node
		key.SetString(name)
		if err := value.Encode(d.sources[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// Assets is the assets mapping of one datasource, in document order.
type Assets struct {
	names  []string
	assets map[string]*Asset
}

func (a *Assets) Len() int {
	return len(a.names)
}

func (a *Assets) Names() []string {
	return a.names
}

func (a *Assets) Get(name string) (*Asset, bool) {
	asset, ok := a.assets[name]
	return asset, ok
}

func (a *Assets) add(asset *Asset) {
	if a.assets == nil {
		a.assets = make(map[string]*Asset)
	}
	a.names = append(a.names, asset.Name)
	a.assets[asset.Name] = asset
}

func (a Assets) IsZero() bool {
	return len(a.names) == 0
}

func (a Assets) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range a.names {
		var key, value yaml.Node
		key.SetString(name)
		if err := value.Encode(a.assets[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

func mappingFields(name string, node *yaml.Node) (map[string]*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &Error{Datasource: name, Reason: "must be a mapping"}
	}
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, ok := fields[key]; ok {
			return nil, &Error{Datasource: name, Field: key, Reason: "duplicate field"}
		}
		fields[key] = node.Content[i+1]
	}
	return fields, nil
}

func decodeDatasource(name string, node *yaml.Node) (*Datasource, error) {
	fields, err := mappingFields(name, node)
	if err != nil {
		return nil, err
	}

	typeNode, ok := fields["type"]
	if !ok {
		return nil, &Error{Datasource: name, Field: "type", Reason: "missing required field"}
	}
	typ := typeNode.Value

	spec, ok := DatasourceType(typ)
	if !ok {
		return nil, &Error{
			Datasource: name,
			Field:      "type",
			Reason:     fmt.Sprintf("unknown datasource type %q", typ),
		}
	}

	allowed := map[string]bool{"type": true, "assets": true}
	for _, k := range spec.RequiredKeys {
		allowed[k] = true
	}
	for _, k := range spec.OptionalKeys {
		allowed[k] = true
	}

	ds := &Datasource{
		Name: name,
		Type: typ,
	}

	// walk in document order so the first offending field is reported
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		if !allowed[key] {
			return nil, &Error{
				Datasource: name,
				Field:      key,
				Reason:     fmt.Sprintf("option is not supported by datasource type %q", typ),
			}
		}

		var derr error
		switch key {
		case "type":
		case "assets":
			derr = decodeAssets(name, typ, spec, value, &ds.Assets)
		case "connection_string":
			derr = value.Decode(&ds.ConnectionString)
		case "base_directory":
			derr = value.Decode(&ds.BaseDirectory)
		case "bucket":
			derr = value.Decode(&ds.Bucket)
		case "region":
			derr = value.Decode(&ds.Region)
		case "endpoint":
			derr = value.Decode(&ds.Endpoint)
		case "force_path_style":
			derr = value.Decode(&ds.ForcePathStyle)
		case "bucket_or_name":
			derr = value.Decode(&ds.BucketOrName)
		case "container":
			derr = value.Decode(&ds.Container)
		case "account_url":
			derr = value.Decode(&ds.AccountURL)
		}
		if derr != nil {
			return nil, annotate(derr, name, "")
		}
	}

	for _, req := range spec.RequiredKeys {
		if _, ok := fields[req]; !ok {
			return nil, &Error{Datasource: name, Field: req, Reason: "missing required field"}
		}
	}

	return ds, nil
}

func decodeAssets(dsName, dsType string, spec TypeSpec, node *yaml.Node, assets *Assets) error {
	if node.Kind != yaml.MappingNode {
		return &Error{Datasource: dsName, Field: "assets", Reason: "must be a mapping"}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, ok := assets.Get(name); ok {
			return &Error{Datasource: dsName, Asset: name, Reason: "duplicate asset name"}
		}

		asset, err := decodeAsset(dsName, dsType, name, spec, node.Content[i+1])
		if err != nil {
			return err
		}
		assets.add(asset)
	}

	return nil
}

func decodeAsset(dsName, dsType, name string, dsSpec TypeSpec, node *yaml.Node) (*Asset, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &Error{Datasource: dsName, Asset: name, Reason: "must be a mapping"}
	}

	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, ok := fields[key]; ok {
			return nil, &Error{Datasource: dsName, Asset: name, Field: key, Reason: "duplicate field"}
		}
		fields[key] = node.Content[i+1]
	}

	typeNode, ok := fields["type"]
	if !ok {
		return nil, &Error{Datasource: dsName, Asset: name, Field: "type", Reason: "missing required field"}
	}
	typ := typeNode.Value

	spec, ok := AssetType(typ)
	if !ok {
		return nil, &Error{
			Datasource: dsName,
			Asset:      name,
			Field:      "type",
			Reason:     fmt.Sprintf("unknown asset type %q", typ),
		}
	}
	if !dsSpec.allowsAssetType(typ) {
		return nil, &Error{
			Datasource: dsName,
			Asset:      name,
			Field:      "type",
			Reason:     fmt.Sprintf("asset type %q is not supported by datasource type %q", typ, dsType),
		}
	}

	allowed := map[string]bool{
		"type":            true,
		"splitter":        true,
		"order_by":        true,
		"connect_options": true,
	}
	for _, k := range spec.RequiredKeys {
		allowed[k] = true
	}
	for _, k := range spec.OptionalKeys {
		allowed[k] = true
	}

	asset := &Asset{
		Name: name,
		Type: typ,
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		if !allowed[key] {
			return nil, &Error{
				Datasource: dsName,
				Asset:      name,
				Field:      key,
				Reason:     fmt.Sprintf("option is not supported by asset type %q", typ),
			}
		}

		var derr error
		switch key {
		case "type":
		case "delimiter":
			derr = value.Decode(&asset.Delimiter)
		case "header":
			derr = value.Decode(&asset.Header)
		case "infer_schema":
			derr = value.Decode(&asset.InferSchema)
		case "glob":
			derr = value.Decode(&asset.Glob)
		case "schema_name":
			derr = value.Decode(&asset.SchemaName)
		case "table_name":
			derr = value.Decode(&asset.TableName)
		case "query":
			derr = value.Decode(&asset.Query)
		case "database":
			derr = value.Decode(&asset.Database)
		case "collection_name":
			derr = value.Decode(&asset.CollectionName)
		case "splitter":
			derr = decodeSplitter(value, asset)
		case "order_by":
			derr = value.Decode(&asset.OrderBy)
		case "connect_options":
			if value.Kind != yaml.MappingNode {
				derr = &Error{Field: "connect_options", Reason: "must be a mapping"}
			} else {
				derr = value.Decode(&asset.ConnectOptions)
			}
		}
		if derr != nil {
			return nil, annotate(derr, dsName, name)
		}
	}

	for _, req := range spec.RequiredKeys {
		if _, ok := fields[req]; !ok {
			return nil, &Error{Datasource: dsName, Asset: name, Field: req, Reason: "missing required field"}
		}
	}

	return asset, nil
}

func decodeSplitter(node *yaml.Node, asset *Asset) error {
	var splitter Splitter
	if err := node.Decode(&splitter); err != nil {
		return &Error{Field: "splitter", Reason: err.Error()}
	}
	if !knownSplitterMethod(splitter.MethodName) {
		return &Error{
			Field:  "splitter.method_name",
			Reason: fmt.Sprintf("unknown splitter method %q", splitter.MethodName),
		}
	}
	if splitter.ColumnName == "" {
		return &Error{Field: "splitter.column_name", Reason: "missing required field"}
	}
	asset.Splitter = &splitter
	return nil
}
