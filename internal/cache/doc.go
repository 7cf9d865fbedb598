// Package cache provides an LRU cache for fixed-size blocks of remote blobs.
//
// String tables read from object storage are scanned a few code units at a
// time; the caching blob store turns those small reads into block fetches and
// keeps recent blocks here. Cached bytes are accounted against an optional
// resource.Controller memory limit.
package cache
