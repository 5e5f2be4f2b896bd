// Package jobs contains background workers that run alongside the HTTP
// server. Each job owns its ticker loop and shuts down cleanly via Stop.
package jobs
