// Package constraints holds the clinical form's constraint table: the fixed
// mapping from field identifier to a numeric range or an enumerated set of
// allowed values. The table is pure data consulted by the feedback and
// validation packages, and can be exported as an OpenAPI schema so server
// code and API clients share the same contract.
package constraints
