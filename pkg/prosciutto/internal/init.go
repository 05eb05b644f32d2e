// Package internal contains shared infrastructure for prosciutto: logging and
// the CA bundle used by network-backed collaborators.
// Types and functions in this package are not part of the public API.
package internal

import _ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
