// Package quote models the price a contractor offers for a job, including the
// optional advance payment request capped at a fifth of the total.
package quote
