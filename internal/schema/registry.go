// Package schema holds the version tag stamped onto llts's structured
// diagnostics so downstream consumers (the driver, any future IDE
// integration) can tell compatible report shapes apart from breaking ones.
package schema

// ErrorV1 tags every structured compiler diagnostic (errors.Report).
const ErrorV1 = "llts.error/v1"
