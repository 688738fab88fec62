package census

import (
	"tabprep/pkg/config"
	"tabprep/pkg/pipeline"
	"tabprep/pkg/table"
	"tabprep/pkg/transform"
)

// DefaultConfig is the stock preprocessing configuration: standard-scaled
// numerics, Unknown-filled categoricals.
func DefaultConfig() *config.Config {
	return &config.Config{
		Features:    DefaultFeatures,
		Categorical: CategoricalColumns,
		Impute:      config.Impute{Categorical: transform.FillConstant, Numeric: transform.MedianFill},
		Scaler:      "standard",
		Estimator: config.Estimator{
			Dropout:       0.3,
			HiddenUnits:   []int{128, 48, 12},
			TrainingSteps: 900,
		},
	}
}

// NewPreprocess builds the adult preprocessing pipeline:
//
//	coerce object columns to categorical
//	project the feature columns
//	fan out: numeric  -> (impute) -> scale
//	         category -> impute -> label-encode -> one-hot
//	fan in:  concatenate branch matrices
//	materialize the sparse result as a table
func NewPreprocess(cfg *config.Config) (*pipeline.Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	numeric := []pipeline.Step{
		{Name: "select-numeric", Transformer: transform.NewTypeSelector(table.Int, table.Float)},
	}
	if cfg.Impute.Numeric != "" {
		numeric = append(numeric, pipeline.Step{Name: "impute", Transformer: transform.NewNumericImputer(cfg.Impute.Numeric)})
	}
	numeric = append(numeric, pipeline.Step{Name: "scale", Transformer: scaler(cfg.Scaler)})

	categorical := []pipeline.Step{
		{Name: "select-categorical", Transformer: transform.NewTypeSelector(table.Categorical)},
		{Name: "impute", Transformer: transform.NewCategoricalImputer(cfg.Impute.Categorical)},
		{Name: "label", Transformer: transform.NewLabelEncoder()},
		{Name: "onehot", Transformer: transform.NewOneHotEncoder()},
	}

	return pipeline.New(
		pipeline.Step{Name: "coerce", Transformer: transform.NewTypeCoercer(cfg.Categorical...)},
		pipeline.Step{Name: "select", Transformer: transform.NewColumnSelector(cfg.Features...)},
		pipeline.Step{Name: "features", Transformer: pipeline.NewUnion(
			pipeline.Branch{Name: "numeric", Transformer: pipeline.New(numeric...)},
			pipeline.Branch{Name: "categorical", Transformer: pipeline.New(categorical...)},
		)},
		pipeline.Step{Name: "densify", Transformer: transform.NewSparseToTable()},
	), nil
}

func scaler(name string) pipeline.Transformer {
	switch name {
	case "minmax":
		return transform.NewMinMaxScaler()
	case "robust":
		return transform.NewRobustScaler()
	}
	return transform.NewStandardScaler()
}
