package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNameAlreadyExists is returned when a profile is created with a name
	// that another profile already holds, ignoring case.
	ErrNameAlreadyExists = errors.New("profile name already exists")

	// ErrNoProfileWasFound is returned when a lookup by id or name matches no
	// profile.
	ErrNoProfileWasFound = errors.New("no profile was found")

	// ErrNoSessionWasFound is returned when a device holds no session slot.
	ErrNoSessionWasFound = errors.New("no session was found")

	// ErrProfileNotSaved is returned when an UPDATE completes without error
	// but affects no row.
	ErrProfileNotSaved = errors.New("profile was not saved")
)

// Low-level storage errors. These are returned (or wrapped) by repository
// methods when an operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrPersistingState is returned when the JSON state file cannot be
	// written. The in-memory state is rolled back.
	ErrPersistingState = errors.New("failed to persist state file")

	// ErrLoadingState is returned when an existing state file cannot be read
	// or decoded at startup.
	ErrLoadingState = errors.New("failed to load state file")
)
