package netsuite

import (
	"errors"
	"sync"
	"time"

	"github.com/suitegate/go-suitetalk/soap"
	"github.com/suitegate/go-suitetalk/soap/transport"
)

// CircuitState represents the state of the circuit breaker.
type CircuitState int

const (
	// StateClosed means the circuit acts normally (requests pass).
	StateClosed CircuitState = iota
	// StateOpen means the circuit fails fast (requests blocked).
	StateOpen
	// StateHalfOpen means the circuit is probing (one request passes).
	StateHalfOpen
)

// String returns the string representation of the state.
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateHalfOpen:
		return "Half-Open"
	default:
		return "Unknown"
	}
}

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("netsuite: circuit breaker is open")

// CircuitBreakerPolicy configures the auth-failure breaker.
type CircuitBreakerPolicy struct {
	// Enabled turns the breaker on.
	Enabled bool

	// FailureThreshold is how many counted failures open the circuit.
	FailureThreshold int

	// ResetTimeout is how long the circuit stays open before probing.
	ResetTimeout time.Duration

	// IsFailure classifies which errors count toward the threshold.
	// Nil counts every error.
	IsFailure func(err error) bool

	// Event callbacks, fired asynchronously on transitions.
	OnStateChange func(from, to CircuitState)
	OnOpen        func()
	OnClose       func()
	OnHalfOpen    func()
}

// DefaultCircuitBreakerPolicy returns the policy applied when none is
// configured: three rejected passports open the circuit for a minute.
// NetSuite locks accounts after six consecutive bad logins, so failing
// fast here keeps a misconfigured client from locking everyone out.
func DefaultCircuitBreakerPolicy() *CircuitBreakerPolicy {
	return &CircuitBreakerPolicy{
		Enabled:          true,
		FailureThreshold: 3,
		ResetTimeout:     time.Minute,
		IsFailure:        isCredentialError,
	}
}

// isCredentialError reports whether err means the server rejected the
// request's credentials.
func isCredentialError(err error) bool {
	var fault *soap.Fault
	if errors.As(err, &fault) {
		return fault.IsInvalidCredentials()
	}
	return errors.Is(err, transport.ErrUnauthorized)
}

// CircuitBreaker implements the circuit breaker pattern over the request
// dispatcher.
type CircuitBreaker struct {
	mu sync.Mutex

	state       CircuitState
	failures    int
	lastFailure time.Time

	// Policy
	threshold int
	timeout   time.Duration
	enabled   bool
	isFailure func(error) bool
	clock     Clock

	// Event callbacks
	onStateChange func(from, to CircuitState)
	onOpen        func()
	onClose       func()
	onHalfOpen    func()
}

// NewCircuitBreaker creates a new circuit breaker with the given policy.
func NewCircuitBreaker(policy *CircuitBreakerPolicy) *CircuitBreaker {
	if policy == nil {
		return &CircuitBreaker{enabled: false, clock: realClock{}}
	}
	return &CircuitBreaker{
		state:         StateClosed,
		threshold:     policy.FailureThreshold,
		timeout:       policy.ResetTimeout,
		enabled:       policy.Enabled,
		isFailure:     policy.IsFailure,
		clock:         realClock{},
		onStateChange: policy.OnStateChange,
		onOpen:        policy.OnOpen,
		onClose:       policy.OnClose,
		onHalfOpen:    policy.OnHalfOpen,
	}
}

// Execute runs the given function within the circuit breaker context.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.enabled {
		return fn()
	}

	if err := cb.checkState(); err != nil {
		return err
	}

	err := fn()

	cb.updateState(err)

	return err
}

// checkState determines if execution is allowed.
func (cb *CircuitBreaker) checkState() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.clock.Now().Sub(cb.lastFailure) > cb.timeout {
			cb.transitionToLocked(StateHalfOpen)
			return nil
		}
		return ErrCircuitOpen
	}

	return nil
}

// transitionToLocked changes state and fires callbacks.
// Must be called with cb.mu held.
func (cb *CircuitBreaker) transitionToLocked(newState CircuitState) {
	if cb.state == newState {
		return
	}
	oldState := cb.state
	cb.state = newState

	// Callbacks run asynchronously so a slow observer cannot stall requests.
	if cb.onStateChange != nil {
		go cb.onStateChange(oldState, newState)
	}

	switch newState {
	case StateOpen:
		if cb.onOpen != nil {
			go cb.onOpen()
		}
	case StateClosed:
		if cb.onClose != nil {
			go cb.onClose()
		}
	case StateHalfOpen:
		if cb.onHalfOpen != nil {
			go cb.onHalfOpen()
		}
	}
}

// updateState records one request outcome.
//
// Errors the classifier does not count leave the state untouched: a
// network blip during a half-open probe neither closes nor re-opens the
// circuit, it just leaves the next request to probe again.
func (cb *CircuitBreaker) updateState(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		if cb.state == StateHalfOpen {
			cb.transitionToLocked(StateClosed)
			cb.failures = 0
		} else if cb.state == StateClosed {
			cb.failures = 0
		}
		return
	}

	if err == ErrCircuitOpen {
		return
	}

	if cb.isFailure != nil && !cb.isFailure(err) {
		return
	}

	cb.failures++
	cb.lastFailure = cb.clock.Now()

	if cb.state == StateHalfOpen {
		cb.transitionToLocked(StateOpen)
		return
	}

	if cb.state == StateClosed && cb.failures >= cb.threshold {
		cb.transitionToLocked(StateOpen)
	}
}

// State returns the current state (thread-safe).
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
