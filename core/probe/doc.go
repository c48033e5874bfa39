// Package probe reads pixel dimensions from the header of stored images
// without downloading the whole object.
package probe
