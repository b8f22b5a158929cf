// Package reporting records the outcome of every selected test, lets other plugins attach
// extra fields to each test's record, and can write the result as a JSON document.
package reporting
