// Package eventloop provides the single-threaded execution model the form
// behaviour relies on: a Loop that runs posted tasks and timer callbacks one
// at a time, and a Manual scheduler that advances a virtual clock so reveal
// sequences can be tested without sleeping.
package eventloop
