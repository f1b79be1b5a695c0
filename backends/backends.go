// Package backends defines the interface a vector-kernel compilation and execution
// engine needs to implement to be used by VecJIT.
//
// The interface mirrors the registration protocol of the native JIT engines it was
// designed for: a kernel handle is populated with array declarations and operations,
// compiled once, and then executed any number of times through short-lived executors.
//
// The core (package github.com/vecjit/vecjit/kernel) only assembles and validates
// the instruction sequence; everything after AddOp is the backend's business.
//
// Fatal misuse of an already finalized object may throw (panic) with a stack trace.
// See package github.com/gomlx/exceptions.
package backends

import (
	"os"
	"strings"

	"github.com/gomlx/exceptions"
)

// Backend is the API that needs to be implemented by a VecJIT backend.
type Backend interface {
	// Name returns the short name of the backend. E.g.: "go" for the portable interpreter.
	Name() string

	// Description is a longer description of the Backend that can be used to pretty-print.
	Description() string

	// NewKernel creates a fresh, empty kernel handle to be populated through the
	// registration calls and compiled. The caller owns the handle and must
	// eventually call Kernel.Finalize on it.
	NewKernel(name string) Kernel

	// Finalize releases all the associated resources immediately, and makes the backend invalid.
	Finalize()
}

// Constructor takes a config string (optionally empty) and returns a Backend.
type Constructor func(config string) Backend

var (
	registeredConstructors = make(map[string]Constructor)
	firstRegistered        string
)

// Register backend with the given name, and a default constructor that takes as input
// a configuration string that is passed along to the backend constructor.
//
// To be safe, call Register during initialization of a package.
func Register(name string, constructor Constructor) {
	if len(registeredConstructors) == 0 {
		firstRegistered = name
	}
	registeredConstructors[name] = constructor
}

// DefaultConfig is the name of the default backend configuration to use if specified.
//
// See NewWithConfig for the format of the configuration string.
var DefaultConfig string

// VECJIT_BACKEND is the environment variable with the default backend configuration to use.
//
// The format of config is "<backend_name>:<backend_configuration>".
// The "<backend_name>" is the name of a registered backend (e.g.: "go") and
// "<backend_configuration>" is backend specific.
const VECJIT_BACKEND = "VECJIT_BACKEND"

// New returns a new default Backend.
//
// The default is:
//
// 1. The environment VECJIT_BACKEND is used as a configuration if defined.
// 2. Next the variable DefaultConfig is used as a configuration if defined.
// 3. The first registered backend is used with an empty configuration.
//
// It panics if no backend was registered.
func New() Backend {
	config, found := os.LookupEnv(VECJIT_BACKEND)
	if found {
		return NewWithConfig(config)
	}
	if DefaultConfig != "" {
		return NewWithConfig(DefaultConfig)
	}
	return NewWithConfig("")
}

// NewWithConfig takes a configuration string formatted as
// "<backend_name>:<backend_configuration>".
// The "<backend_name>" is the name of a registered backend (e.g.: "go") and
// "<backend_configuration>" is backend specific.
func NewWithConfig(config string) Backend {
	if len(registeredConstructors) == 0 {
		exceptions.Panicf(`no registered backends for VecJIT -- maybe import the default one with import _ "github.com/vecjit/vecjit/backends/govec"?`)
	}
	backendName := firstRegistered
	backendConfig := config
	if idx := strings.Index(config, ":"); idx != -1 {
		backendName = config[:idx]
		backendConfig = config[idx+1:]
	}
	constructor, found := registeredConstructors[backendName]
	if !found {
		exceptions.Panicf("can't find backend %q for configuration %q given", backendName, config)
	}
	return constructor(backendConfig)
}
