// Package main provides the entry point for the retiree intake service.
// It initializes and runs a web server using the Fiber framework that
// collects retiree verification form submissions with supporting document
// uploads, persists them with gorm and offers an administrative dashboard
// with Excel and PDF export of all submissions.
package main
