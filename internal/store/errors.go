package store

import "errors"

// Low-level database operation errors. Repository methods wrap them so
// callers can match with [errors.Is].
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when a commit fails. The
	// transaction is rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when a row of the mappings table cannot be
	// read back.
	ErrScanningRows = errors.New("failed to scan mapping rows")

	// ErrCorruptedEntry is returned when a stored entry blob does not decode.
	ErrCorruptedEntry = errors.New("stored entry is corrupted")
)
