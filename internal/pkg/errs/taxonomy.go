package errs

// Error taxonomy shared by every store. Concrete failures are marked with one of these
// so callers can branch with Is regardless of the wrapped message.
var (
	// missing authenticated user, insufficient role, resource absent from the cache
	ErrPrecondition = New("precondition failed")
	// any failure returned by the backend, treated opaquely
	ErrBackend = New("backend request failed")
	// offline persistence facade failure
	ErrLocalStorage = New("local storage failure")

	ErrOffline        = New("operation requires connectivity")
	ErrSyncInProgress = New("offline sync already in progress")
)

// Refinements of ErrPrecondition. Errors carrying one of these also match ErrPrecondition.
var (
	ErrNotSignedIn = New("not signed in")
	ErrForbidden   = New("insufficient permissions")
	ErrNotFound    = New("resource not found")
)

// Precondition builds a precondition failure with a specific message.
func Precondition(msg string) error {
	return Mark(New(msg), ErrPrecondition)
}

// Invalid marks a validation error from the domain as a precondition failure, keeping the
// original error matchable.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return Mark(err, ErrPrecondition)
}

func NotSignedIn() error {
	return Mark(Mark(New("user must be signed in"), ErrNotSignedIn), ErrPrecondition)
}

func Forbidden(msg string) error {
	return Mark(Mark(New(msg), ErrForbidden), ErrPrecondition)
}

func NotFound(what string) error {
	return Mark(Mark(Newf("%s not found", what), ErrNotFound), ErrPrecondition)
}

func Backend(err error, msg string) error {
	return Mark(Wrap(err, msg), ErrBackend)
}

func LocalStorage(err error, msg string) error {
	return Mark(Wrap(err, msg), ErrLocalStorage)
}
