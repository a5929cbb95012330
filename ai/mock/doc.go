// Package mock provides test doubles for the ai service interfaces.
// The doubles are deterministic by default and support behavior injection
// via function fields plus call-count assertions.
package mock
