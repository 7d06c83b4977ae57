/*
Package session keeps named calculator sessions alive between requests.

Each session owns an interpreter, so variables and ans persist across
evaluations. Sessions can be saved to a Store and restored later, even
after the process restarts when a FileStore is used.
*/
package session
