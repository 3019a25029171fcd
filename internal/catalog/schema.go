package catalog

// ColumnType is the semantic type of a tabular column.
type ColumnType int

// Column types.
const (
	TypeString ColumnType = iota
	TypeInteger
	TypeBoolean
)

// String returns the type name.
func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// Column is one required column of a schema.
type Column struct {
	Name string
	Type ColumnType
}

// Schema lists the columns a tabular source must provide, in export order.
type Schema struct {
	// Kind names the tag kind the source describes, such as "item".
	Kind    string
	Columns []Column
}

// Well-known column names.
const (
	ColumnName  = "Name"
	ColumnID    = "ID"
	ColumnMod   = "Mod"
	ColumnClass = "Class"
)

// ItemSchema describes an item ID dump.
var ItemSchema = Schema{
	Kind: "item",
	Columns: []Column{
		{Name: ColumnName, Type: TypeString},
		{Name: ColumnID, Type: TypeInteger},
		{Name: "Has Item", Type: TypeBoolean},
		{Name: ColumnMod, Type: TypeString},
		{Name: ColumnClass, Type: TypeString},
	},
}

// BlockSchema describes a block ID dump.
var BlockSchema = Schema{
	Kind: "block",
	Columns: []Column{
		{Name: ColumnName, Type: TypeString},
		{Name: ColumnID, Type: TypeInteger},
		{Name: "Has Block", Type: TypeBoolean},
		{Name: ColumnMod, Type: TypeString},
		{Name: ColumnClass, Type: TypeString},
	},
}

// Missing returns the schema columns absent from header, in schema order.
func (s Schema) Missing(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, c := range s.Columns {
		if !present[c.Name] {
			missing = append(missing, c.Name)
		}
	}
	return missing
}
