package coordinator

// CoordinatorError is a custom error type for coordinator errors
type CoordinatorError string

// Error implements the error interface
func (e CoordinatorError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig  CoordinatorError = "config cannot be nil"
	ErrNilService CoordinatorError = "team service cannot be nil"
	ErrNilFeed    CoordinatorError = "event feed cannot be nil"
	ErrNoUser     CoordinatorError = "user identity is required"
)
