// Package kernel contains shared value objects used across the domain model.
// It currently holds the UUID identity type; domain packages depend on kernel
// rather than on third-party identifier libraries directly.
package kernel
