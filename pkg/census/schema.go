// Package census ties the generic pipeline machinery to the UCI Adult
// income dataset: the fixed input schema, a CSV loader, a train/test split
// and the prebuilt preprocessing pipeline.
package census

import "tabprep/pkg/table"

// Field is one column of the documented input schema.
type Field struct {
	Name string
	Kind table.Kind
}

// Schema is the dataset's column order, label excluded. String columns
// arrive as Object and are coerced to Categorical by the pipeline.
var Schema = []Field{
	{"age", table.Int},
	{"workclass", table.Object},
	{"education", table.Object},
	{"education-num", table.Int},
	{"marital-status", table.Object},
	{"occupation", table.Object},
	{"relationship", table.Object},
	{"race", table.Object},
	{"sex", table.Object},
	{"capital-gain", table.Int},
	{"capital-loss", table.Int},
	{"hours-per-week", table.Int},
	{"native-country", table.Object},
}

// LabelColumn is the income label appended after the schema columns.
const LabelColumn = "income"

// PositiveLabel marks the >50K income class.
const PositiveLabel = ">50K"

// CategoricalColumns are the object columns the pipeline coerces.
var CategoricalColumns = []string{
	"workclass", "education", "marital-status", "occupation",
	"relationship", "race", "sex", "native-country",
}

// DefaultFeatures are the columns projected into the prediction pipeline
// ("education" is dropped in favour of the ordinal "education-num").
var DefaultFeatures = []string{
	"age", "workclass", "education-num", "marital-status", "occupation",
	"relationship", "race", "sex", "capital-gain", "capital-loss",
	"hours-per-week", "native-country",
}
