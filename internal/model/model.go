// Package model holds the rows read from and written to the store and the
// payload shapes shared by the service and handler layers.
package model
