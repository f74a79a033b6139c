// Package handler is the first layer after the router.
//
// It binds requests, validates them using the validation package,
// and calls the appropriate service. It is the interface between
// the HTTP request and the business logic.
package handler
