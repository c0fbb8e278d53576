// Package log defines standard attribute keys for model selection operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in crossval. Using these standard keys enables better
// log analysis, monitoring, and debugging of cross-validation workflows.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Cross-Validation Context
//   - Performance Metrics
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "cv.fold") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type and operation being performed.
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "LinearRegression", "RandomForestRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "split", "evaluate", "select", "finalize"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "selection", "ensemble.forest", "linear"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of records (rows) in the dataset.
	// This is crucial for understanding the scale of data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"

	// TrainSizeKey indicates the number of records in the training subset.
	TrainSizeKey = "data.train_size"

	// HoldoutSizeKey indicates the number of records in the holdout subset.
	HoldoutSizeKey = "data.holdout_size"
)

// Cross-Validation Context
// These attributes locate an event inside the (configuration x fold) matrix.
const (
	// FoldKey indicates the zero-based index of the fold being evaluated.
	FoldKey = "cv.fold"

	// FoldsKey indicates the total number of folds (v).
	FoldsKey = "cv.folds"

	// ConfigKey carries the canonical key of a model configuration.
	// Examples: "forest mtry=2", "linear"
	ConfigKey = "cv.config"

	// FamilyKey carries the model family of a configuration.
	// Examples: "forest", "linear"
	FamilyKey = "cv.family"

	// SeedKey records the random seed for reproducibility.
	// Essential for debugging and ensuring reproducible partitions.
	SeedKey = "cv.seed"

	// ProportionKey records the train proportion passed to the splitter.
	ProportionKey = "cv.proportion"
)

// Performance Metrics
// These attributes capture timing and score information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	// This is essential for performance monitoring and optimization.
	DurationMsKey = "perf.duration_ms"

	// RMSEKey records a root mean squared error score.
	// Lower values indicate better predictive performance.
	RMSEKey = "metrics.rmse"

	// MeanRMSEKey records the mean RMSE of a configuration across folds.
	MeanRMSEKey = "metrics.mean_rmse"

	// StdRMSEKey records the standard deviation of per-fold RMSE scores.
	StdRMSEKey = "metrics.std_rmse"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Model operations
	OperationFit     = "fit"
	OperationPredict = "predict"

	// Selection pipeline stages
	OperationSplit    = "split"
	OperationEvaluate = "evaluate"
	OperationSelect   = "select"
	OperationFinalize = "finalize"
)
