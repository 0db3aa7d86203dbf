// internal/domain/errors.go
package domain

import "fmt"

// SchemaError reports a dataset that is missing required columns. The whole
// upload is rejected; a partial run would silently skew supply and demand.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %v", e.MissingColumns)
}

// DataTypeError reports a cell that could not be coerced to the type the
// contract requires (non-negative integer quantities).
type DataTypeError struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *DataTypeError) Error() string {
	return fmt.Sprintf("row %d: column %q value %q: %s", e.Line, e.Column, e.Value, e.Reason)
}

// ConstraintViolation signals a broken allocation invariant. It never fires
// on bad business data; seeing one means the engine itself is defective.
type ConstraintViolation struct {
	Article string
	Detail  string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("allocation constraint violated for article %s: %s", e.Article, e.Detail)
}
