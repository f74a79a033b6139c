// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains the Redis lookup cache, background job processing
// (using Redis/Asynq), the email client (Resend) and the periodic
// dependency health checks (cron).
package lib
