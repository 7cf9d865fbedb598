// Package resource governs the memory, fetch concurrency and IO bandwidth
// spent on reading string tables from remote or cached byte sources.
//
//	┌──────────────────────────────────────────────────────────┐
//	│                       Controller                         │
//	├──────────────────┬──────────────────┬────────────────────┤
//	│  Memory Limit    │  Fetch slots     │  IO Rate Limiter   │
//	│  (fail-fast)     │  (semaphore)     │  (token bucket)    │
//	├──────────────────┼──────────────────┼────────────────────┤
//	│  AcquireMemory   │  AcquireFetch    │  AcquireIO         │
//	│  TryAcquireMem.  │  TryAcquireFetch │  TryAcquireIO      │
//	│  ReleaseMemory   │  ReleaseFetch    │                    │
//	└──────────────────┴──────────────────┴────────────────────┘
//
// The block cache accounts cached blocks against the memory limit, the
// caching blob store bounds its parallel range fetches with fetch slots, and
// blob-backed byte sources pace their reads with the IO limiter.
//
// All methods are safe for concurrent use and a nil *Controller is a valid
// no-op controller.
package resource
