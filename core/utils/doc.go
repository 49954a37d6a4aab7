// Package utils provides small conversion helpers for loosely typed values,
// such as dimensions carried in object user metadata.
package utils
